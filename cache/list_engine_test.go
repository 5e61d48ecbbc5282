package cache

import (
	"context"
	"testing"
	"time"

	"studyhub/dao/redis_repo"
	"studyhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListEngine(kv KV, pageSize int, loadPage func(ctx context.Context, parentId int64, page, size int) ([]testSnap, error)) *ListEngine[testSnap] {
	return NewListEngine[testSnap](
		kv, "forum_comment", time.Minute, pageSize,
		func(s testSnap) int64 { return s.Id },
		loadPage,
		func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error) {
			stats := make(map[int64]models.Stats, len(ids))
			for _, id := range ids {
				stats[id] = models.Stats{LikeCount: id}
			}
			return stats, nil
		},
	)
}

func TestListEngineMissLoadsPageAndWritesBack(t *testing.T) {
	kv := newFakeKV()
	loadCalls := 0
	engine := newTestListEngine(kv, 2, func(ctx context.Context, parentId int64, page, size int) ([]testSnap, error) {
		loadCalls++
		return []testSnap{{Id: 10}, {Id: 11}}, nil
	})
	ctx := context.Background()

	items, stats, hasMore, err := engine.GetPage(ctx, 5, 1, models.Anonymous)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, hasMore)
	assert.Equal(t, int64(10), stats[10].LikeCount)
	assert.Contains(t, kv.data, redis_repo.PageKey("forum_comment", 5, 1))

	// Second read is a page hit; stats still go to the store.
	_, _, _, err = engine.GetPage(ctx, 5, 1, models.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, 1, loadCalls)
}

func TestListEngineEmptyPageNotCached(t *testing.T) {
	kv := newFakeKV()
	engine := newTestListEngine(kv, 2, func(ctx context.Context, parentId int64, page, size int) ([]testSnap, error) {
		return nil, nil
	})

	items, stats, hasMore, err := engine.GetPage(context.Background(), 5, 3, models.Anonymous)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, stats)
	assert.False(t, hasMore)
	assert.NotContains(t, kv.data, redis_repo.PageKey("forum_comment", 5, 3))
}

func TestListEngineAppendFillsThenOpensNextPage(t *testing.T) {
	kv := newFakeKV()
	engine := newTestListEngine(kv, 2, nil)
	ctx := context.Background()

	require.NoError(t, engine.Append(ctx, 5, testSnap{Id: 1}))
	require.NoError(t, engine.Append(ctx, 5, testSnap{Id: 2}))
	require.NoError(t, engine.Append(ctx, 5, testSnap{Id: 3}))

	var page1, page2 []testSnap
	require.True(t, redis_repo.DecodeJSON(kv.data[redis_repo.PageKey("forum_comment", 5, 1)], &page1))
	require.True(t, redis_repo.DecodeJSON(kv.data[redis_repo.PageKey("forum_comment", 5, 2)], &page2))
	assert.Equal(t, []int64{1, 2}, []int64{page1[0].Id, page1[1].Id})
	require.Len(t, page2, 1)
	assert.Equal(t, int64(3), page2[0].Id)
}

func TestListEngineAppendIsolatedPerParent(t *testing.T) {
	kv := newFakeKV()
	engine := newTestListEngine(kv, 2, nil)
	ctx := context.Background()

	require.NoError(t, engine.Append(ctx, 5, testSnap{Id: 1}))
	require.NoError(t, engine.Append(ctx, 6, testSnap{Id: 2}))

	var page5, page6 []testSnap
	require.True(t, redis_repo.DecodeJSON(kv.data[redis_repo.PageKey("forum_comment", 5, 1)], &page5))
	require.True(t, redis_repo.DecodeJSON(kv.data[redis_repo.PageKey("forum_comment", 6, 1)], &page6))
	assert.Len(t, page5, 1)
	assert.Len(t, page6, 1)
}

func TestListEngineScrubRemovesNamespaceAndCursor(t *testing.T) {
	kv := newFakeKV()
	engine := newTestListEngine(kv, 2, nil)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, engine.Append(ctx, 5, testSnap{Id: i}))
	}
	require.NoError(t, engine.Append(ctx, 6, testSnap{Id: 99}))

	require.NoError(t, engine.Scrub(ctx, 5))

	for key := range kv.data {
		assert.NotContains(t, key, ":forum_comment:5:", "parent 5 keys must all be gone")
	}
	assert.NotContains(t, kv.data, redis_repo.CursorKey("forum_comment", 5))
	// The sibling parent's page survives.
	assert.Contains(t, kv.data, redis_repo.PageKey("forum_comment", 6, 1))
}
