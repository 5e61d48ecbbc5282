package mysql_repo

import (
	"context"
	"time"

	"studyhub/models"
	"studyhub/pkg/sqls"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type commentSnapshotRow struct {
	CommentId   int64     `db:"comment_id"`
	ParentId    int64     `db:"parent_id"`
	AuthorId    int64     `db:"author_id"`
	AuthorName  string    `db:"author_name"`
	Description string    `db:"description"`
	CreateTime  time.Time `db:"create_time"`
	UpdateTime  time.Time `db:"update_time"`
}

func commentRowsToSnapshots(rows []commentSnapshotRow) []models.CommentSnapshot {
	out := make([]models.CommentSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.CommentSnapshot{
			CommentId:   row.CommentId,
			ParentId:    row.ParentId,
			AuthorId:    row.AuthorId,
			AuthorName:  row.AuthorName,
			Description: row.Description,
			CreateTime:  row.CreateTime,
			UpdateTime:  row.UpdateTime,
		})
	}
	return out
}

var ForumCommentRepository = newForumCommentRepository()

func newForumCommentRepository() *forumCommentRepository { return &forumCommentRepository{} }

type forumCommentRepository struct{}

func (r *forumCommentRepository) Create(db *gorm.DB, t *models.ForumComment) (err error) {
	err = db.Create(t).Error
	return
}

func (r *forumCommentRepository) Get(db *gorm.DB, id int64) *models.ForumComment {
	ret := &models.ForumComment{}
	if err := db.First(ret, "comment_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *forumCommentRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.ForumComment) {
	cnd.Find(db, &list)
	return
}

func (r *forumCommentRepository) Count(db *gorm.DB, cnd *sqls.Cnd) int64 {
	return cnd.Count(db, &models.ForumComment{})
}

// LoadPage fetches one page of comment snapshots in append order, author
// names resolved in the same query.
func (r *forumCommentRepository) LoadPage(ctx context.Context, dbx *sqlx.DB, forumId int64, page, size int) ([]models.CommentSnapshot, error) {
	if page <= 0 {
		page = 1
	}
	query := `
SELECT c.comment_id, c.forum_id AS parent_id, c.author_id, u.username AS author_name,
       c.description, c.create_time, c.update_time
FROM t_forum_comment c
JOIN t_user u ON u.user_id = c.author_id
WHERE c.forum_id = ?
ORDER BY c.create_time ASC, c.comment_id ASC
LIMIT ? OFFSET ?`
	var rows []commentSnapshotRow
	if err := dbx.SelectContext(ctx, &rows, query, forumId, size, (page-1)*size); err != nil {
		return nil, err
	}
	return commentRowsToSnapshots(rows), nil
}

// DeleteCommentInfo removes the comment, its replies and both of their
// like/collect rows, children first.
func (r *forumCommentRepository) DeleteCommentInfo(db *gorm.DB, commentId int64, replyIds []int64) (err error) {
	tx := db.Begin()
	if err = tx.Error; err != nil {
		zap.L().Error("create transaction failed in DeleteCommentInfo()", zap.Error(err))
		return err
	}
	if len(replyIds) > 0 {
		if err = tx.Delete(&models.Like{}, "target_id IN (?) AND target_type = ?", replyIds, models.TargetForumReply).Error; err != nil {
			zap.L().Error("delete reply likes failed in DeleteCommentInfo()", zap.Error(err))
			tx.Rollback()
			return err
		}
		if err = tx.Delete(&models.ForumReply{}, "comment_id = ?", commentId).Error; err != nil {
			zap.L().Error("delete replies failed in DeleteCommentInfo()", zap.Error(err))
			tx.Rollback()
			return err
		}
	}
	if err = tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", commentId, models.TargetForumComment).Error; err != nil {
		zap.L().Error("delete comment likes failed in DeleteCommentInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.ForumComment{}, "comment_id = ?", commentId).Error; err != nil {
		zap.L().Error("delete comment failed in DeleteCommentInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit transaction failed in DeleteCommentInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	return nil
}

var ForumReplyRepository = newForumReplyRepository()

func newForumReplyRepository() *forumReplyRepository { return &forumReplyRepository{} }

type forumReplyRepository struct{}

func (r *forumReplyRepository) Create(db *gorm.DB, t *models.ForumReply) (err error) {
	err = db.Create(t).Error
	return
}

func (r *forumReplyRepository) Get(db *gorm.DB, id int64) *models.ForumReply {
	ret := &models.ForumReply{}
	if err := db.First(ret, "reply_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *forumReplyRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.ForumReply) {
	cnd.Find(db, &list)
	return
}

func (r *forumReplyRepository) ReplyIds(db *gorm.DB, commentId int64) (ids []int64) {
	db.Model(&models.ForumReply{}).Where("comment_id = ?", commentId).Pluck("reply_id", &ids)
	return
}

func (r *forumReplyRepository) LoadPage(ctx context.Context, dbx *sqlx.DB, commentId int64, page, size int) ([]models.CommentSnapshot, error) {
	if page <= 0 {
		page = 1
	}
	query := `
SELECT c.reply_id AS comment_id, c.comment_id AS parent_id, c.author_id, u.username AS author_name,
       c.description, c.create_time, c.update_time
FROM t_forum_reply c
JOIN t_user u ON u.user_id = c.author_id
WHERE c.comment_id = ?
ORDER BY c.create_time ASC, c.reply_id ASC
LIMIT ? OFFSET ?`
	var rows []commentSnapshotRow
	if err := dbx.SelectContext(ctx, &rows, query, commentId, size, (page-1)*size); err != nil {
		return nil, err
	}
	return commentRowsToSnapshots(rows), nil
}

func (r *forumReplyRepository) DeleteReplyInfo(db *gorm.DB, replyId int64) (err error) {
	tx := db.Begin()
	if err = tx.Error; err != nil {
		zap.L().Error("create transaction failed in DeleteReplyInfo()", zap.Error(err))
		return err
	}
	if err = tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", replyId, models.TargetForumReply).Error; err != nil {
		zap.L().Error("delete reply likes failed in DeleteReplyInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.ForumReply{}, "reply_id = ?", replyId).Error; err != nil {
		zap.L().Error("delete reply failed in DeleteReplyInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit transaction failed in DeleteReplyInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	return nil
}
