package cache

import (
	"context"
	"time"

	"studyhub/dao/redis_repo"
	"studyhub/models"

	"go.uber.org/zap"
)

// FeedEngine serves ranked feed pages for one content kind. Static
// snapshots are cached per item (not per page) so the same entry is
// reusable across pages and collections; dynamic fields are re-read from
// the store on every call and merged over the snapshots.
type FeedEngine[S any] struct {
	kv       KV
	kind     string
	ttl      time.Duration
	pageSize int

	idOf        func(S) int64
	resolvePage func(ctx context.Context, page, size int) ([]int64, error)
	loadStatics func(ctx context.Context, ids []int64) ([]S, error)
	loadStats   func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error)
}

func NewFeedEngine[S any](
	kv KV,
	kind string,
	ttl time.Duration,
	pageSize int,
	idOf func(S) int64,
	resolvePage func(ctx context.Context, page, size int) ([]int64, error),
	loadStatics func(ctx context.Context, ids []int64) ([]S, error),
	loadStats func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error),
) *FeedEngine[S] {
	return &FeedEngine[S]{
		kv:          kv,
		kind:        kind,
		ttl:         ttl,
		pageSize:    pageSize,
		idOf:        idOf,
		resolvePage: resolvePage,
		loadStatics: loadStatics,
		loadStats:   loadStats,
	}
}

func (e *FeedEngine[S]) PageSize() int { return e.pageSize }

// GetPage resolves the ordered ids for the page, merges cache and store,
// and overlays dynamic fields. hasMore is true iff the page came back
// full; with a collection size that is an exact multiple of the page size
// the last full page still reports more. That heuristic is intentional.
func (e *FeedEngine[S]) GetPage(ctx context.Context, page int, viewer models.Viewer) ([]S, map[int64]models.Stats, bool, error) {
	ids, err := e.resolvePage(ctx, page, e.pageSize)
	if err != nil {
		return nil, nil, false, err
	}
	items, stats, err := e.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, nil, false, err
	}
	return items, stats, len(items) == e.pageSize, nil
}

// GetByIds runs the hit/miss merge for an already-resolved id list. The
// personalization and search paths feed their own id lists through here.
func (e *FeedEngine[S]) GetByIds(ctx context.Context, ids []int64, viewer models.Viewer) ([]S, map[int64]models.Stats, error) {
	if len(ids) == 0 {
		// Short-circuit: no cache or store traffic for an empty page.
		return []S{}, map[int64]models.Stats{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redis_repo.ItemKey(e.kind, id)
	}

	byId := make(map[int64]S, len(ids))
	vals, err := e.kv.MGet(ctx, keys...)
	if err != nil {
		// Degraded mode: the cache must never fail the request. Treat
		// everything as a miss and serve from the store.
		zap.L().Warn("feed cache unavailable, serving from store",
			zap.String("kind", e.kind), zap.Error(err))
		vals = make([]*string, len(ids))
	}

	var misses []int64
	for i, id := range ids {
		if vals[i] == nil {
			misses = append(misses, id)
			continue
		}
		var snap S
		if redis_repo.DecodeJSON(*vals[i], &snap) {
			byId[id] = snap
		} else {
			misses = append(misses, id)
		}
	}

	if len(misses) > 0 {
		fetched, err := e.loadStatics(ctx, misses)
		if err != nil {
			return nil, nil, err
		}
		for _, snap := range fetched {
			id := e.idOf(snap)
			byId[id] = snap
			// Each snapshot is written back under its own key so it can
			// serve other pages and collections too.
			raw, err := redis_repo.EncodeJSON(snap)
			if err != nil {
				zap.L().Error("encode snapshot failed", zap.String("kind", e.kind), zap.Error(err))
				continue
			}
			if err := e.kv.Set(ctx, redis_repo.ItemKey(e.kind, id), raw, e.ttl); err != nil {
				zap.L().Warn("snapshot write-back failed",
					zap.String("kind", e.kind), zap.Int64("id", id), zap.Error(err))
			}
		}
	}

	// Recombine in the resolved order; ids deleted between resolution and
	// fetch simply drop out.
	merged := make([]S, 0, len(ids))
	presentIds := make([]int64, 0, len(ids))
	for _, id := range ids {
		if snap, ok := byId[id]; ok {
			merged = append(merged, snap)
			presentIds = append(presentIds, id)
		}
	}
	if len(presentIds) == 0 {
		return []S{}, map[int64]models.Stats{}, nil
	}

	stats, err := e.loadStats(ctx, presentIds, viewer)
	if err != nil {
		return nil, nil, err
	}
	return merged, stats, nil
}

// Refresh overwrites one item's snapshot entry; the edit path uses it.
func (e *FeedEngine[S]) Refresh(ctx context.Context, id int64, snap S) error {
	raw, err := redis_repo.EncodeJSON(snap)
	if err != nil {
		return err
	}
	return e.kv.Set(ctx, redis_repo.ItemKey(e.kind, id), raw, e.ttl)
}

// Invalidate drops one item's snapshot entry.
func (e *FeedEngine[S]) Invalidate(ctx context.Context, id int64) error {
	return e.kv.Del(ctx, redis_repo.ItemKey(e.kind, id))
}
