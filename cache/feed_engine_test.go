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

type testSnap struct {
	Id    int64  `json:"id,string"`
	Title string `json:"title"`
}

func newTestFeedEngine(kv KV, pageSize int, resolvePage func(ctx context.Context, page, size int) ([]int64, error), loadStatics func(ctx context.Context, ids []int64) ([]testSnap, error)) *FeedEngine[testSnap] {
	return NewFeedEngine[testSnap](
		kv, "blog", time.Minute, pageSize,
		func(s testSnap) int64 { return s.Id },
		resolvePage,
		loadStatics,
		func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error) {
			stats := make(map[int64]models.Stats, len(ids))
			for _, id := range ids {
				stats[id] = models.Stats{LikeCount: id * 10}
			}
			return stats, nil
		},
	)
}

func seedSnap(t *testing.T, kv *fakeKV, kind string, snap testSnap) {
	t.Helper()
	raw, err := redis_repo.EncodeJSON(snap)
	require.NoError(t, err)
	kv.data[redis_repo.ItemKey(kind, snap.Id)] = raw
}

func TestFeedEngineMergesHitsAndMissesInOrder(t *testing.T) {
	kv := newFakeKV()
	seedSnap(t, kv, "blog", testSnap{Id: 2, Title: "cached"})

	var loadedIds []int64
	engine := newTestFeedEngine(kv, 3, nil, func(ctx context.Context, ids []int64) ([]testSnap, error) {
		loadedIds = ids
		out := make([]testSnap, 0, len(ids))
		for _, id := range ids {
			out = append(out, testSnap{Id: id, Title: "stored"})
		}
		return out, nil
	})

	items, stats, err := engine.GetByIds(context.Background(), []int64{1, 2, 3}, models.Anonymous)
	require.NoError(t, err)

	// Only the misses hit the store.
	assert.Equal(t, []int64{1, 3}, loadedIds)

	// Output follows the requested order regardless of hit/miss split.
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].Id)
	assert.Equal(t, "cached", items[1].Title)
	assert.Equal(t, int64(3), items[2].Id)

	assert.Equal(t, int64(20), stats[2].LikeCount)

	// Misses were written back under their own item keys.
	assert.Contains(t, kv.data, redis_repo.ItemKey("blog", 1))
	assert.Contains(t, kv.data, redis_repo.ItemKey("blog", 3))
}

func TestFeedEngineDropsIdsMissingFromStore(t *testing.T) {
	kv := newFakeKV()
	engine := newTestFeedEngine(kv, 3, nil, func(ctx context.Context, ids []int64) ([]testSnap, error) {
		// id 2 was deleted out of band; the store only returns 1 and 3.
		return []testSnap{{Id: 1}, {Id: 3}}, nil
	})

	items, stats, err := engine.GetByIds(context.Background(), []int64{1, 2, 3}, models.Anonymous)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Id)
	assert.Equal(t, int64(3), items[1].Id)
	assert.NotContains(t, stats, int64(2))
}

func TestFeedEngineEmptyIdsShortCircuits(t *testing.T) {
	kv := newFakeKV()
	engine := newTestFeedEngine(kv, 3, nil, func(ctx context.Context, ids []int64) ([]testSnap, error) {
		t.Fatal("loadStatics must not run for an empty id list")
		return nil, nil
	})

	items, stats, err := engine.GetByIds(context.Background(), nil, models.Anonymous)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, stats)
	assert.Zero(t, kv.mgetCalls)
}

func TestFeedEngineDegradesWhenCacheDown(t *testing.T) {
	kv := newFakeKV()
	kv.failMGet = true
	kv.failSet = true
	engine := newTestFeedEngine(kv, 3, nil, func(ctx context.Context, ids []int64) ([]testSnap, error) {
		out := make([]testSnap, 0, len(ids))
		for _, id := range ids {
			out = append(out, testSnap{Id: id})
		}
		return out, nil
	})

	items, _, err := engine.GetByIds(context.Background(), []int64{1, 2}, models.Anonymous)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFeedEngineHasMoreIsPageFullHeuristic(t *testing.T) {
	kv := newFakeKV()
	load := func(ctx context.Context, ids []int64) ([]testSnap, error) {
		out := make([]testSnap, 0, len(ids))
		for _, id := range ids {
			out = append(out, testSnap{Id: id})
		}
		return out, nil
	}

	full := newTestFeedEngine(kv, 2, func(ctx context.Context, page, size int) ([]int64, error) {
		return []int64{1, 2}, nil
	}, load)
	_, _, hasMore, err := full.GetPage(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)
	// A full page always claims more, even when it is the actual end of
	// the collection.
	assert.True(t, hasMore)

	short := newTestFeedEngine(kv, 2, func(ctx context.Context, page, size int) ([]int64, error) {
		return []int64{3}, nil
	}, load)
	_, _, hasMore, err = short.GetPage(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)
	assert.False(t, hasMore)
}

func TestFeedEngineRefreshAndInvalidate(t *testing.T) {
	kv := newFakeKV()
	engine := newTestFeedEngine(kv, 3, nil, nil)

	require.NoError(t, engine.Refresh(context.Background(), 7, testSnap{Id: 7, Title: "edited"}))
	key := redis_repo.ItemKey("blog", 7)
	require.Contains(t, kv.data, key)

	var decoded testSnap
	require.True(t, redis_repo.DecodeJSON(kv.data[key], &decoded))
	assert.Equal(t, "edited", decoded.Title)

	require.NoError(t, engine.Invalidate(context.Background(), 7))
	assert.NotContains(t, kv.data, key)
}
