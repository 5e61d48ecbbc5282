package sqls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagingOffset(t *testing.T) {
	assert.Equal(t, 0, (&Paging{Page: 0, Limit: 10}).Offset())
	assert.Equal(t, 0, (&Paging{Page: 1, Limit: 10}).Offset())
	assert.Equal(t, 30, (&Paging{Page: 4, Limit: 10}).Offset())
}

func TestCndAccumulatesClauses(t *testing.T) {
	cnd := NewCnd().Cols("id", "title").Eq("author_id", 7).In("status", []int{0, 1}).
		Desc("update_time").Asc("id").Page(2, 20)

	assert.Equal(t, []string{"id", "title"}, cnd.SelectCols)
	assert.Len(t, cnd.Wheres, 2)
	assert.Equal(t, "author_id = ?", cnd.Wheres[0].Query)
	assert.Equal(t, "status IN (?)", cnd.Wheres[1].Query)
	assert.Equal(t, []string{"update_time DESC", "id ASC"}, cnd.Orders)
	assert.Equal(t, 2, cnd.Paging.Page)
	assert.Equal(t, 20, cnd.Paging.Limit)
}

func TestCndLimitIsFirstPage(t *testing.T) {
	cnd := NewCnd().Limit(5)
	assert.Equal(t, 1, cnd.Paging.Page)
	assert.Equal(t, 5, cnd.Paging.Limit)
	assert.Equal(t, 0, cnd.Paging.Offset())
}
