package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyhub/dao/redis_repo"
	"studyhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTestNotFound = errors.New("Blog not found")

type itemEngineFixture struct {
	kv        *fakeKV
	engine    *ItemEngine[testSnap]
	loadCalls int
	incCalls  []int64
	stored    map[int64]testSnap
	viewNums  map[int64]int64
}

func newItemEngineFixture() *itemEngineFixture {
	f := &itemEngineFixture{
		kv:       newFakeKV(),
		stored:   map[int64]testSnap{},
		viewNums: map[int64]int64{},
	}
	f.engine = NewItemEngine[testSnap](
		f.kv, "blog", time.Minute, errTestNotFound,
		func(ctx context.Context, id int64) (*testSnap, error) {
			f.loadCalls++
			snap, ok := f.stored[id]
			if !ok {
				return nil, nil
			}
			return &snap, nil
		},
		func(ctx context.Context, id int64) error {
			f.incCalls = append(f.incCalls, id)
			f.viewNums[id]++
			return nil
		},
		func(ctx context.Context, id int64, viewer models.Viewer) (models.Stats, error) {
			return models.Stats{ViewCount: f.viewNums[id], IsLiked: viewer.UserId == 42}, nil
		},
	)
	return f
}

func TestItemEngineMissLoadsIncrementsAndWritesBack(t *testing.T) {
	f := newItemEngineFixture()
	f.stored[1] = testSnap{Id: 1, Title: "hello"}

	snap, stats, err := f.engine.GetById(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, "hello", snap.Title)

	// The store recorded one view; the displayed count is that plus the
	// current fetch.
	assert.Equal(t, []int64{1}, f.incCalls)
	assert.Equal(t, int64(2), stats.ViewCount)
	assert.Contains(t, f.kv.data, redis_repo.ItemKey("blog", 1))
}

func TestItemEngineHitSkipsStoreAndIncrement(t *testing.T) {
	f := newItemEngineFixture()
	f.stored[1] = testSnap{Id: 1, Title: "hello"}

	_, _, err := f.engine.GetById(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)
	snap, stats, err := f.engine.GetById(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)

	assert.Equal(t, "hello", snap.Title)
	assert.Equal(t, 1, f.loadCalls, "second fetch must be served from cache")
	assert.Equal(t, []int64{1}, f.incCalls, "cache hits do not record views")
	// Stats stay store-fresh on hits too, still displayed plus one.
	assert.Equal(t, int64(2), stats.ViewCount)
}

func TestItemEngineNotFound(t *testing.T) {
	f := newItemEngineFixture()
	snap, _, err := f.engine.GetById(context.Background(), 99, models.Anonymous)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, errTestNotFound)
	assert.Empty(t, f.incCalls)
}

func TestItemEngineViewerStats(t *testing.T) {
	f := newItemEngineFixture()
	f.stored[1] = testSnap{Id: 1}

	_, stats, err := f.engine.GetById(context.Background(), 1, models.Viewer{UserId: 42})
	require.NoError(t, err)
	assert.True(t, stats.IsLiked)

	_, stats, err = f.engine.GetById(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)
	assert.False(t, stats.IsLiked, "viewer fields must not leak through the shared snapshot")
}

func TestItemEngineDegradesWhenCacheDown(t *testing.T) {
	f := newItemEngineFixture()
	f.stored[1] = testSnap{Id: 1, Title: "hello"}
	f.kv.failGet = true
	f.kv.failSet = true

	snap, _, err := f.engine.GetById(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, "hello", snap.Title)
	assert.Equal(t, 1, f.loadCalls)
}

func TestItemEngineRepopulatesAfterInvalidate(t *testing.T) {
	f := newItemEngineFixture()
	f.stored[1] = testSnap{Id: 1, Title: "v1"}

	_, _, err := f.engine.GetById(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)

	f.stored[1] = testSnap{Id: 1, Title: "v2"}
	require.NoError(t, f.engine.Invalidate(context.Background(), 1))

	snap, _, err := f.engine.GetById(context.Background(), 1, models.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, "v2", snap.Title)
	assert.Equal(t, 2, f.loadCalls)
}
