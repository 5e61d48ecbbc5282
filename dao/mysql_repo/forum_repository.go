package mysql_repo

import (
	"context"
	"database/sql"
	"time"

	"studyhub/models"
	"studyhub/pkg/sqls"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ForumRepository = newForumRepository()

func newForumRepository() *forumRepository { return &forumRepository{} }

type forumRepository struct{}

func (r *forumRepository) Create(db *gorm.DB, t *models.Forum) (err error) {
	err = db.Create(t).Error
	return
}

func (r *forumRepository) Get(db *gorm.DB, id int64) *models.Forum {
	ret := &models.Forum{}
	if err := db.First(ret, "forum_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *forumRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.Forum) {
	cnd.Find(db, &list)
	return
}

func (r *forumRepository) Count(db *gorm.DB, cnd *sqls.Cnd) int64 {
	return cnd.Count(db, &models.Forum{})
}

func (r *forumRepository) Updates(db *gorm.DB, id int64, columns map[string]interface{}) (err error) {
	err = db.Model(&models.Forum{}).Where("forum_id = ?", id).Updates(columns).Error
	return
}

func (r *forumRepository) IncreaseViewNum(db *gorm.DB, id int64) (err error) {
	err = db.Model(&models.Forum{}).Where("forum_id = ?", id).
		UpdateColumn("view_nums", gorm.Expr("view_nums + 1")).Error
	return
}

type forumSnapshotRow struct {
	ForumId     int64          `db:"forum_id"`
	AuthorId    int64          `db:"author_id"`
	AuthorName  string         `db:"author_name"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Topic       string         `db:"topic"`
	CreateTime  time.Time      `db:"create_time"`
	UpdateTime  time.Time      `db:"update_time"`
	MediaUrl    sql.NullString `db:"media_url"`
	MediaHandle sql.NullString `db:"media_handle"`
	MediaMime   sql.NullString `db:"media_mime"`
}

func (r *forumRepository) FindSnapshots(ctx context.Context, dbx *sqlx.DB, ids []int64) ([]models.ForumSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
SELECT f.forum_id, f.author_id, u.username AS author_name,
       f.title, f.description, f.topic, f.create_time, f.update_time,
       m.url AS media_url, m.delete_handle AS media_handle, m.mime_type AS media_mime
FROM t_forum f
JOIN t_user u ON u.user_id = f.author_id
LEFT JOIN t_media m ON m.target_id = f.forum_id AND m.target_type = ?
WHERE f.forum_id IN (?)`
	query, args, err := sqlx.In(query, models.TargetForum, ids)
	if err != nil {
		return nil, err
	}
	var rows []forumSnapshotRow
	if err := dbx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return groupForumRows(rows), nil
}

// groupForumRows mirrors groupBlogRows: media rows for one forum may be
// interleaved with other forums' rows, so grouping goes through stable
// pointers before the output slice is built.
func groupForumRows(rows []forumSnapshotRow) []models.ForumSnapshot {
	byId := make(map[int64]*models.ForumSnapshot, len(rows))
	var order []int64
	for _, row := range rows {
		snap, ok := byId[row.ForumId]
		if !ok {
			snap = &models.ForumSnapshot{
				ForumId:     row.ForumId,
				AuthorId:    row.AuthorId,
				AuthorName:  row.AuthorName,
				Title:       row.Title,
				Description: row.Description,
				Topic:       row.Topic,
				CreateTime:  row.CreateTime,
				UpdateTime:  row.UpdateTime,
			}
			byId[row.ForumId] = snap
			order = append(order, row.ForumId)
		}
		if row.MediaUrl.Valid {
			snap.Media = append(snap.Media, models.MediaRef{
				Url:          row.MediaUrl.String,
				DeleteHandle: row.MediaHandle.String,
				MimeType:     row.MediaMime.String,
			})
		}
	}
	out := make([]models.ForumSnapshot, 0, len(order))
	for _, id := range order {
		out = append(out, *byId[id])
	}
	return out
}

// DeleteForumInfo drops replies, comments, media, likes, collects and then
// the forum itself, in that order.
func (r *forumRepository) DeleteForumInfo(db *gorm.DB, forumId int64) (err error) {
	tx := db.Begin()
	if err = tx.Error; err != nil {
		zap.L().Error("create transaction failed in DeleteForumInfo()", zap.Error(err))
		return err
	}
	if err = tx.Delete(&models.ForumReply{}, "forum_id = ?", forumId).Error; err != nil {
		zap.L().Error("delete forum replies failed in DeleteForumInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.ForumComment{}, "forum_id = ?", forumId).Error; err != nil {
		zap.L().Error("delete forum comments failed in DeleteForumInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Media{}, "target_id = ? AND target_type = ?", forumId, models.TargetForum).Error; err != nil {
		zap.L().Error("delete forum media failed in DeleteForumInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", forumId, models.TargetForum).Error; err != nil {
		zap.L().Error("delete forum likes failed in DeleteForumInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Collect{}, "target_id = ? AND target_type = ?", forumId, models.TargetForum).Error; err != nil {
		zap.L().Error("delete forum collects failed in DeleteForumInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Forum{}, "forum_id = ?", forumId).Error; err != nil {
		zap.L().Error("delete forum failed in DeleteForumInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit transaction failed in DeleteForumInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	return nil
}
