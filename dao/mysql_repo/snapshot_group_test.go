package mysql_repo

import (
	"database/sql"
	"testing"
	"time"

	"studyhub/models"

	"github.com/stretchr/testify/assert"
)

func mediaCol(value string) sql.NullString {
	return sql.NullString{String: value, Valid: true}
}

// The join gives one row per item x media pair with no ordering
// guarantee, so rows for the same item can arrive split apart by other
// items' rows. Grouping must still collect every media ref.
func TestGroupBlogRowsInterleavedMedia(t *testing.T) {
	now := time.Now()
	base := func(id int64) blogSnapshotRow {
		return blogSnapshotRow{
			BlogId:     id,
			AuthorId:   7,
			AuthorName: "ada",
			Title:      "t",
			CreateTime: now,
			UpdateTime: now,
		}
	}
	rowA := base(1)
	rowA.MediaUrl = mediaCol("https://cdn/a.png")
	rowA.MediaHandle = mediaCol("del-a")
	rowB := base(1)
	rowB.MediaUrl = mediaCol("https://cdn/b.png")
	rowB.MediaHandle = mediaCol("del-b")

	out := groupBlogRows([]blogSnapshotRow{rowA, base(2), base(3), rowB})

	assert.Len(t, out, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{out[0].BlogId, out[1].BlogId, out[2].BlogId})
	assert.Equal(t, []models.MediaRef{
		{Url: "https://cdn/a.png", DeleteHandle: "del-a"},
		{Url: "https://cdn/b.png", DeleteHandle: "del-b"},
	}, out[0].Media)
	assert.Empty(t, out[1].Media)
}

func TestGroupVideoRowsNullMedia(t *testing.T) {
	now := time.Now()
	rows := []videoSnapshotRow{
		{VideoId: 5, AuthorId: 7, AuthorName: "ada", Title: "v", Duration: 90, CreateTime: now, UpdateTime: now},
	}
	out := groupVideoRows(rows)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(90), out[0].Duration)
	assert.Empty(t, out[0].Media)
}

func TestGroupForumRowsSingleItemManyMedia(t *testing.T) {
	now := time.Now()
	var rows []forumSnapshotRow
	for _, url := range []string{"u1", "u2", "u3"} {
		rows = append(rows, forumSnapshotRow{
			ForumId: 9, AuthorId: 7, AuthorName: "ada", Title: "f",
			CreateTime: now, UpdateTime: now,
			MediaUrl: mediaCol(url),
		})
	}
	out := groupForumRows(rows)
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Media, 3)
	assert.Equal(t, "u2", out[0].Media[1].Url)
}
