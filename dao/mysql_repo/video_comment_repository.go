package mysql_repo

import (
	"context"

	"studyhub/models"
	"studyhub/pkg/sqls"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var VideoCommentRepository = newVideoCommentRepository()

func newVideoCommentRepository() *videoCommentRepository { return &videoCommentRepository{} }

type videoCommentRepository struct{}

func (r *videoCommentRepository) Create(db *gorm.DB, t *models.VideoComment) (err error) {
	err = db.Create(t).Error
	return
}

func (r *videoCommentRepository) Get(db *gorm.DB, id int64) *models.VideoComment {
	ret := &models.VideoComment{}
	if err := db.First(ret, "comment_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *videoCommentRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.VideoComment) {
	cnd.Find(db, &list)
	return
}

func (r *videoCommentRepository) Count(db *gorm.DB, cnd *sqls.Cnd) int64 {
	return cnd.Count(db, &models.VideoComment{})
}

func (r *videoCommentRepository) LoadPage(ctx context.Context, dbx *sqlx.DB, videoId int64, page, size int) ([]models.CommentSnapshot, error) {
	if page <= 0 {
		page = 1
	}
	query := `
SELECT c.comment_id, c.video_id AS parent_id, c.author_id, u.username AS author_name,
       c.description, c.create_time, c.update_time
FROM t_video_comment c
JOIN t_user u ON u.user_id = c.author_id
WHERE c.video_id = ?
ORDER BY c.create_time ASC, c.comment_id ASC
LIMIT ? OFFSET ?`
	var rows []commentSnapshotRow
	if err := dbx.SelectContext(ctx, &rows, query, videoId, size, (page-1)*size); err != nil {
		return nil, err
	}
	return commentRowsToSnapshots(rows), nil
}

func (r *videoCommentRepository) DeleteCommentInfo(db *gorm.DB, commentId int64, replyIds []int64) (err error) {
	tx := db.Begin()
	if err = tx.Error; err != nil {
		zap.L().Error("create transaction failed in video DeleteCommentInfo()", zap.Error(err))
		return err
	}
	if len(replyIds) > 0 {
		if err = tx.Delete(&models.Like{}, "target_id IN (?) AND target_type = ?", replyIds, models.TargetVideoReply).Error; err != nil {
			zap.L().Error("delete reply likes failed in video DeleteCommentInfo()", zap.Error(err))
			tx.Rollback()
			return err
		}
		if err = tx.Delete(&models.VideoReply{}, "comment_id = ?", commentId).Error; err != nil {
			zap.L().Error("delete replies failed in video DeleteCommentInfo()", zap.Error(err))
			tx.Rollback()
			return err
		}
	}
	if err = tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", commentId, models.TargetVideoComment).Error; err != nil {
		zap.L().Error("delete comment likes failed in video DeleteCommentInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.VideoComment{}, "comment_id = ?", commentId).Error; err != nil {
		zap.L().Error("delete comment failed in video DeleteCommentInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit transaction failed in video DeleteCommentInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	return nil
}

var VideoReplyRepository = newVideoReplyRepository()

func newVideoReplyRepository() *videoReplyRepository { return &videoReplyRepository{} }

type videoReplyRepository struct{}

func (r *videoReplyRepository) Create(db *gorm.DB, t *models.VideoReply) (err error) {
	err = db.Create(t).Error
	return
}

func (r *videoReplyRepository) Get(db *gorm.DB, id int64) *models.VideoReply {
	ret := &models.VideoReply{}
	if err := db.First(ret, "reply_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *videoReplyRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.VideoReply) {
	cnd.Find(db, &list)
	return
}

func (r *videoReplyRepository) ReplyIds(db *gorm.DB, commentId int64) (ids []int64) {
	db.Model(&models.VideoReply{}).Where("comment_id = ?", commentId).Pluck("reply_id", &ids)
	return
}

func (r *videoReplyRepository) LoadPage(ctx context.Context, dbx *sqlx.DB, commentId int64, page, size int) ([]models.CommentSnapshot, error) {
	if page <= 0 {
		page = 1
	}
	query := `
SELECT c.reply_id AS comment_id, c.comment_id AS parent_id, c.author_id, u.username AS author_name,
       c.description, c.create_time, c.update_time
FROM t_video_reply c
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

func (r *videoReplyRepository) DeleteReplyInfo(db *gorm.DB, replyId int64) (err error) {
	tx := db.Begin()
	if err = tx.Error; err != nil {
		zap.L().Error("create transaction failed in video DeleteReplyInfo()", zap.Error(err))
		return err
	}
	if err = tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", replyId, models.TargetVideoReply).Error; err != nil {
		zap.L().Error("delete reply likes failed in video DeleteReplyInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.VideoReply{}, "reply_id = ?", replyId).Error; err != nil {
		zap.L().Error("delete reply failed in video DeleteReplyInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit transaction failed in video DeleteReplyInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	return nil
}
