package mysql_repo

import (
	"context"
	"fmt"

	"studyhub/models"

	"github.com/jmoiron/sqlx"
)

// ContentTable describes one content kind's table so the dynamic-field
// queries can be shared across all of them.
type ContentTable struct {
	Table    string
	IdColumn string
	Kind     string
}

var (
	BlogTable         = ContentTable{Table: "t_blog", IdColumn: "blog_id", Kind: models.TargetBlog}
	ForumTable        = ContentTable{Table: "t_forum", IdColumn: "forum_id", Kind: models.TargetForum}
	VideoTable        = ContentTable{Table: "t_video", IdColumn: "video_id", Kind: models.TargetVideo}
	ForumCommentTable = ContentTable{Table: "t_forum_comment", IdColumn: "comment_id", Kind: models.TargetForumComment}
	ForumReplyTable   = ContentTable{Table: "t_forum_reply", IdColumn: "reply_id", Kind: models.TargetForumReply}
	VideoCommentTable = ContentTable{Table: "t_video_comment", IdColumn: "comment_id", Kind: models.TargetVideoComment}
	VideoReplyTable   = ContentTable{Table: "t_video_reply", IdColumn: "reply_id", Kind: models.TargetVideoReply}
)

var StatsRepository = newStatsRepository()

func newStatsRepository() *statsRepository { return &statsRepository{} }

type statsRepository struct{}

type statsRow struct {
	ItemId int64 `db:"item_id"`
	models.Stats
}

// viewColumn: the comment tables have no view counter, everything else
// carries view_nums.
func viewColumn(ct ContentTable) string {
	switch ct.Kind {
	case models.TargetBlog, models.TargetForum, models.TargetVideo:
		return "c.view_nums"
	default:
		return "0"
	}
}

// BatchStats fetches the dynamic fields for exactly the given ids in one
// query: current view count, like count, and the viewer's isLiked/isSaved
// via a left-join null check.
func (r *statsRepository) BatchStats(ctx context.Context, dbx *sqlx.DB, ct ContentTable, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error) {
	if len(ids) == 0 {
		return map[int64]models.Stats{}, nil
	}
	query := fmt.Sprintf(`
SELECT c.%[1]s AS item_id,
       %[2]s AS view_count,
       (SELECT COUNT(*) FROM t_like l WHERE l.target_id = c.%[1]s AND l.target_type = ?) AS like_count,
       CASE WHEN ul.like_id IS NULL THEN 0 ELSE 1 END AS is_liked,
       CASE WHEN uc.collect_id IS NULL THEN 0 ELSE 1 END AS is_saved
FROM %[3]s c
LEFT JOIN t_like ul
       ON ul.target_id = c.%[1]s AND ul.target_type = ? AND ul.user_id = ?
LEFT JOIN t_collect uc
       ON uc.target_id = c.%[1]s AND uc.target_type = ? AND uc.user_id = ?
WHERE c.%[1]s IN (?)`, ct.IdColumn, viewColumn(ct), ct.Table)

	query, args, err := sqlx.In(query, ct.Kind, ct.Kind, viewer.UserId, ct.Kind, viewer.UserId, ids)
	if err != nil {
		return nil, err
	}
	var rows []statsRow
	if err := dbx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make(map[int64]models.Stats, len(rows))
	for _, row := range rows {
		out[row.ItemId] = row.Stats
	}
	return out, nil
}

// RankedPageIds resolves one page of item ids under the feed ordering:
// updated-today first, then like count desc, then last-updated desc, ties
// by id.
func (r *statsRepository) RankedPageIds(ctx context.Context, dbx *sqlx.DB, ct ContentTable, page, size int) ([]int64, error) {
	if page <= 0 {
		page = 1
	}
	query := fmt.Sprintf(`
SELECT c.%[1]s
FROM %[2]s c
LEFT JOIN (
    SELECT target_id, COUNT(*) AS like_count
    FROM t_like WHERE target_type = ? GROUP BY target_id
) lc ON lc.target_id = c.%[1]s
ORDER BY (DATE(c.update_time) = CURDATE()) DESC,
         COALESCE(lc.like_count, 0) DESC,
         c.update_time DESC,
         c.%[1]s ASC
LIMIT ? OFFSET ?`, ct.IdColumn, ct.Table)

	var ids []int64
	err := dbx.SelectContext(ctx, &ids, query, ct.Kind, size, (page-1)*size)
	return ids, err
}

// RankedIdsByAuthors is the personalization slice: up to limit ids from
// the given authors, same ordering as the general feed.
func (r *statsRepository) RankedIdsByAuthors(ctx context.Context, dbx *sqlx.DB, ct ContentTable, authorIds []int64, limit int) ([]int64, error) {
	if len(authorIds) == 0 || limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
SELECT c.%[1]s
FROM %[2]s c
LEFT JOIN (
    SELECT target_id, COUNT(*) AS like_count
    FROM t_like WHERE target_type = ? GROUP BY target_id
) lc ON lc.target_id = c.%[1]s
WHERE c.author_id IN (?)
ORDER BY (DATE(c.update_time) = CURDATE()) DESC,
         COALESCE(lc.like_count, 0) DESC,
         c.update_time DESC,
         c.%[1]s ASC
LIMIT ?`, ct.IdColumn, ct.Table)

	query, args, err := sqlx.In(query, ct.Kind, authorIds, limit)
	if err != nil {
		return nil, err
	}
	var ids []int64
	err = dbx.SelectContext(ctx, &ids, query, args...)
	return ids, err
}
