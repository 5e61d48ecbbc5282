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

var VideoRepository = newVideoRepository()

func newVideoRepository() *videoRepository { return &videoRepository{} }

type videoRepository struct{}

func (r *videoRepository) Create(db *gorm.DB, t *models.Video) (err error) {
	err = db.Create(t).Error
	return
}

func (r *videoRepository) Get(db *gorm.DB, id int64) *models.Video {
	ret := &models.Video{}
	if err := db.First(ret, "video_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *videoRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.Video) {
	cnd.Find(db, &list)
	return
}

func (r *videoRepository) Count(db *gorm.DB, cnd *sqls.Cnd) int64 {
	return cnd.Count(db, &models.Video{})
}

func (r *videoRepository) Updates(db *gorm.DB, id int64, columns map[string]interface{}) (err error) {
	err = db.Model(&models.Video{}).Where("video_id = ?", id).Updates(columns).Error
	return
}

func (r *videoRepository) IncreaseViewNum(db *gorm.DB, id int64) (err error) {
	err = db.Model(&models.Video{}).Where("video_id = ?", id).
		UpdateColumn("view_nums", gorm.Expr("view_nums + 1")).Error
	return
}

type videoSnapshotRow struct {
	VideoId     int64          `db:"video_id"`
	AuthorId    int64          `db:"author_id"`
	AuthorName  string         `db:"author_name"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Topic       string         `db:"topic"`
	Duration    int64          `db:"duration"`
	CreateTime  time.Time      `db:"create_time"`
	UpdateTime  time.Time      `db:"update_time"`
	MediaUrl    sql.NullString `db:"media_url"`
	MediaHandle sql.NullString `db:"media_handle"`
	MediaMime   sql.NullString `db:"media_mime"`
}

func (r *videoRepository) FindSnapshots(ctx context.Context, dbx *sqlx.DB, ids []int64) ([]models.VideoSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
SELECT v.video_id, v.author_id, u.username AS author_name,
       v.title, v.description, v.topic, v.duration, v.create_time, v.update_time,
       m.url AS media_url, m.delete_handle AS media_handle, m.mime_type AS media_mime
FROM t_video v
JOIN t_user u ON u.user_id = v.author_id
LEFT JOIN t_media m ON m.target_id = v.video_id AND m.target_type = ?
WHERE v.video_id IN (?)`
	query, args, err := sqlx.In(query, models.TargetVideo, ids)
	if err != nil {
		return nil, err
	}
	var rows []videoSnapshotRow
	if err := dbx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return groupVideoRows(rows), nil
}

// groupVideoRows mirrors groupBlogRows; see the note there about
// non-contiguous join rows.
func groupVideoRows(rows []videoSnapshotRow) []models.VideoSnapshot {
	byId := make(map[int64]*models.VideoSnapshot, len(rows))
	var order []int64
	for _, row := range rows {
		snap, ok := byId[row.VideoId]
		if !ok {
			snap = &models.VideoSnapshot{
				VideoId:     row.VideoId,
				AuthorId:    row.AuthorId,
				AuthorName:  row.AuthorName,
				Title:       row.Title,
				Description: row.Description,
				Topic:       row.Topic,
				Duration:    row.Duration,
				CreateTime:  row.CreateTime,
				UpdateTime:  row.UpdateTime,
			}
			byId[row.VideoId] = snap
			order = append(order, row.VideoId)
		}
		if row.MediaUrl.Valid {
			snap.Media = append(snap.Media, models.MediaRef{
				Url:          row.MediaUrl.String,
				DeleteHandle: row.MediaHandle.String,
				MimeType:     row.MediaMime.String,
			})
		}
	}
	out := make([]models.VideoSnapshot, 0, len(order))
	for _, id := range order {
		out = append(out, *byId[id])
	}
	return out
}

func (r *videoRepository) DeleteVideoInfo(db *gorm.DB, videoId int64) (err error) {
	tx := db.Begin()
	if err = tx.Error; err != nil {
		zap.L().Error("create transaction failed in DeleteVideoInfo()", zap.Error(err))
		return err
	}
	if err = tx.Delete(&models.VideoReply{}, "video_id = ?", videoId).Error; err != nil {
		zap.L().Error("delete video replies failed in DeleteVideoInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.VideoComment{}, "video_id = ?", videoId).Error; err != nil {
		zap.L().Error("delete video comments failed in DeleteVideoInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Media{}, "target_id = ? AND target_type = ?", videoId, models.TargetVideo).Error; err != nil {
		zap.L().Error("delete video media failed in DeleteVideoInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", videoId, models.TargetVideo).Error; err != nil {
		zap.L().Error("delete video likes failed in DeleteVideoInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Collect{}, "target_id = ? AND target_type = ?", videoId, models.TargetVideo).Error; err != nil {
		zap.L().Error("delete video collects failed in DeleteVideoInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Video{}, "video_id = ?", videoId).Error; err != nil {
		zap.L().Error("delete video failed in DeleteVideoInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit transaction failed in DeleteVideoInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	return nil
}
