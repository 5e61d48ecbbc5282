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

var BlogRepository = newBlogRepository()

func newBlogRepository() *blogRepository { return &blogRepository{} }

type blogRepository struct{}

func (r *blogRepository) Create(db *gorm.DB, t *models.Blog) (err error) {
	err = db.Create(t).Error
	return
}

func (r *blogRepository) Get(db *gorm.DB, id int64) *models.Blog {
	ret := &models.Blog{}
	if err := db.First(ret, "blog_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *blogRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.Blog) {
	cnd.Find(db, &list)
	return
}

func (r *blogRepository) Count(db *gorm.DB, cnd *sqls.Cnd) int64 {
	return cnd.Count(db, &models.Blog{})
}

func (r *blogRepository) Updates(db *gorm.DB, id int64, columns map[string]interface{}) (err error) {
	err = db.Model(&models.Blog{}).Where("blog_id = ?", id).Updates(columns).Error
	return
}

// IncreaseViewNum bumps the counter atomically in the store so concurrent
// fetches never lose an increment.
func (r *blogRepository) IncreaseViewNum(db *gorm.DB, id int64) (err error) {
	err = db.Model(&models.Blog{}).Where("blog_id = ?", id).
		UpdateColumn("view_nums", gorm.Expr("view_nums + 1")).Error
	return
}

type blogSnapshotRow struct {
	BlogId      int64          `db:"blog_id"`
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

// FindSnapshots batch-fetches the static payload for the given ids in one
// query, joining author display fields and media rows; the item x media
// multi-rows are grouped into one snapshot per blog.
func (r *blogRepository) FindSnapshots(ctx context.Context, dbx *sqlx.DB, ids []int64) ([]models.BlogSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
SELECT b.blog_id, b.author_id, u.username AS author_name,
       b.title, b.description, b.topic, b.create_time, b.update_time,
       m.url AS media_url, m.delete_handle AS media_handle, m.mime_type AS media_mime
FROM t_blog b
JOIN t_user u ON u.user_id = b.author_id
LEFT JOIN t_media m ON m.target_id = b.blog_id AND m.target_type = ?
WHERE b.blog_id IN (?)`
	query, args, err := sqlx.In(query, models.TargetBlog, ids)
	if err != nil {
		return nil, err
	}
	var rows []blogSnapshotRow
	if err := dbx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	return groupBlogRows(rows), nil
}

// groupBlogRows folds the item x media multi-rows into one snapshot per
// blog. Rows for the same blog are not assumed contiguous, so snapshots
// accumulate behind stable pointers and the slice is laid out only at the
// end, in first-seen order.
func groupBlogRows(rows []blogSnapshotRow) []models.BlogSnapshot {
	byId := make(map[int64]*models.BlogSnapshot, len(rows))
	var order []int64
	for _, row := range rows {
		snap, ok := byId[row.BlogId]
		if !ok {
			snap = &models.BlogSnapshot{
				BlogId:      row.BlogId,
				AuthorId:    row.AuthorId,
				AuthorName:  row.AuthorName,
				Title:       row.Title,
				Description: row.Description,
				Topic:       row.Topic,
				CreateTime:  row.CreateTime,
				UpdateTime:  row.UpdateTime,
			}
			byId[row.BlogId] = snap
			order = append(order, row.BlogId)
		}
		if row.MediaUrl.Valid {
			snap.Media = append(snap.Media, models.MediaRef{
				Url:          row.MediaUrl.String,
				DeleteHandle: row.MediaHandle.String,
				MimeType:     row.MediaMime.String,
			})
		}
	}
	out := make([]models.BlogSnapshot, 0, len(order))
	for _, id := range order {
		out = append(out, *byId[id])
	}
	return out
}

// DeleteBlogInfo removes the blog and every dependent row children-first;
// referential cascade is not assumed from the store.
func (r *blogRepository) DeleteBlogInfo(db *gorm.DB, blogId int64) (err error) {
	tx := db.Begin()
	if err = tx.Error; err != nil {
		zap.L().Error("create transaction failed in DeleteBlogInfo()", zap.Error(err))
		return err
	}
	if err = tx.Delete(&models.Media{}, "target_id = ? AND target_type = ?", blogId, models.TargetBlog).Error; err != nil {
		zap.L().Error("delete blog media failed in DeleteBlogInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", blogId, models.TargetBlog).Error; err != nil {
		zap.L().Error("delete blog likes failed in DeleteBlogInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Collect{}, "target_id = ? AND target_type = ?", blogId, models.TargetBlog).Error; err != nil {
		zap.L().Error("delete blog collects failed in DeleteBlogInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&models.Blog{}, "blog_id = ?", blogId).Error; err != nil {
		zap.L().Error("delete blog failed in DeleteBlogInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		zap.L().Error("commit transaction failed in DeleteBlogInfo()", zap.Error(err))
		tx.Rollback()
		return err
	}
	return nil
}
