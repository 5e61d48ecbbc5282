package cache

import (
	"context"
	"time"

	"studyhub/dao/redis_repo"
	"studyhub/models"

	"go.uber.org/zap"
)

// ListEngine serves the append-heavy child collections (comments and
// replies). Unlike the feed engine it caches whole pages under the parent
// namespace, so a create can append into the current last page instead of
// invalidating the collection.
type ListEngine[S any] struct {
	kv       KV
	kind     string
	ttl      time.Duration
	pageSize int
	cursor   *CursorTracker

	idOf      func(S) int64
	loadPage  func(ctx context.Context, parentId int64, page, size int) ([]S, error)
	loadStats func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error)
}

func NewListEngine[S any](
	kv KV,
	kind string,
	ttl time.Duration,
	pageSize int,
	idOf func(S) int64,
	loadPage func(ctx context.Context, parentId int64, page, size int) ([]S, error),
	loadStats func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error),
) *ListEngine[S] {
	return &ListEngine[S]{
		kv:        kv,
		kind:      kind,
		ttl:       ttl,
		pageSize:  pageSize,
		cursor:    NewCursorTracker(kv, ttl),
		idOf:      idOf,
		loadPage:  loadPage,
		loadStats: loadStats,
	}
}

// GetPage returns one page of snapshots with fresh dynamic fields merged
// in. hasMore follows the page-full heuristic.
func (e *ListEngine[S]) GetPage(ctx context.Context, parentId int64, page int, viewer models.Viewer) ([]S, map[int64]models.Stats, bool, error) {
	if page <= 0 {
		page = 1
	}
	key := redis_repo.PageKey(e.kind, parentId, page)

	var items []S
	hit := false
	raw, ok, err := e.kv.Get(ctx, key)
	if err != nil {
		zap.L().Warn("page cache unavailable, serving from store",
			zap.String("kind", e.kind), zap.Int64("parent", parentId), zap.Error(err))
	} else if ok && redis_repo.DecodeJSON(raw, &items) {
		hit = true
	}

	if !hit {
		items, err = e.loadPage(ctx, parentId, page, e.pageSize)
		if err != nil {
			return nil, nil, false, err
		}
		if len(items) > 0 {
			if encoded, err := redis_repo.EncodeJSON(items); err == nil {
				if err := e.kv.Set(ctx, key, encoded, e.ttl); err != nil {
					zap.L().Warn("page write-back failed",
						zap.String("kind", e.kind), zap.Int64("parent", parentId), zap.Error(err))
				}
			}
		}
	}

	if len(items) == 0 {
		return []S{}, map[int64]models.Stats{}, false, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = e.idOf(item)
	}
	stats, err := e.loadStats(ctx, ids, viewer)
	if err != nil {
		return nil, nil, false, err
	}
	return items, stats, len(items) == e.pageSize, nil
}

// Append places a freshly created item into the collection's current last
// cached page, opening page 1 (or the next page) via the cursor when
// needed.
func (e *ListEngine[S]) Append(ctx context.Context, parentId int64, item S) error {
	page, err := e.cursor.NextSlot(ctx, redis_repo.CursorKey(e.kind, parentId), e.pageSize)
	if err != nil {
		return err
	}
	key := redis_repo.PageKey(e.kind, parentId, page)

	var items []S
	raw, hit, err := e.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if hit {
		if !redis_repo.DecodeJSON(raw, &items) {
			items = nil
		}
	}
	items = append(items, item)

	encoded, err := redis_repo.EncodeJSON(items)
	if err != nil {
		return err
	}
	return e.kv.Set(ctx, key, encoded, e.ttl)
}

// Scrub removes every cached page under the parent's namespace plus the
// append cursor. The page keys are located by pattern scan, so cost is
// O(keys in the namespace).
func (e *ListEngine[S]) Scrub(ctx context.Context, parentId int64) error {
	keys, err := e.kv.ScanKeys(ctx, redis_repo.PagePattern(e.kind, parentId))
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := e.kv.Del(ctx, keys...); err != nil {
			return err
		}
	}
	return e.kv.Del(ctx, redis_repo.CursorKey(e.kind, parentId))
}
