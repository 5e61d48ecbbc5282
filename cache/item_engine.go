package cache

import (
	"context"
	"time"

	"studyhub/dao/redis_repo"
	"studyhub/models"

	"go.uber.org/zap"
)

// ItemEngine serves a single content item by id: cache-aside for the
// static snapshot, always-fresh dynamic fields, and the store-side view
// increment recorded on a cache miss.
type ItemEngine[S any] struct {
	kv       KV
	kind     string
	ttl      time.Duration
	notFound error

	// loadStatic returns (nil, nil) when the id does not exist.
	loadStatic func(ctx context.Context, id int64) (*S, error)
	incView    func(ctx context.Context, id int64) error
	loadStats  func(ctx context.Context, id int64, viewer models.Viewer) (models.Stats, error)
}

func NewItemEngine[S any](
	kv KV,
	kind string,
	ttl time.Duration,
	notFound error,
	loadStatic func(ctx context.Context, id int64) (*S, error),
	incView func(ctx context.Context, id int64) error,
	loadStats func(ctx context.Context, id int64, viewer models.Viewer) (models.Stats, error),
) *ItemEngine[S] {
	return &ItemEngine[S]{
		kv:         kv,
		kind:       kind,
		ttl:        ttl,
		notFound:   notFound,
		loadStatic: loadStatic,
		incView:    incView,
		loadStats:  loadStats,
	}
}

// GetById returns the merged snapshot and dynamic fields. The returned
// viewCount is the freshly read store value plus one: the just-recorded
// view is reflected at display time rather than by a second store read.
func (e *ItemEngine[S]) GetById(ctx context.Context, id int64, viewer models.Viewer) (*S, models.Stats, error) {
	key := redis_repo.ItemKey(e.kind, id)

	var snap *S
	raw, hit, err := e.kv.Get(ctx, key)
	if err != nil {
		zap.L().Warn("item cache unavailable, serving from store",
			zap.String("kind", e.kind), zap.Int64("id", id), zap.Error(err))
		hit = false
	}
	if hit {
		var s S
		if redis_repo.DecodeJSON(raw, &s) {
			snap = &s
		}
	}

	if snap == nil {
		s, err := e.loadStatic(ctx, id)
		if err != nil {
			return nil, models.Stats{}, err
		}
		if s == nil {
			return nil, models.Stats{}, e.notFound
		}
		snap = s
		// The view is recorded in the store, never in the cache, so
		// concurrent fetches cannot lose increments.
		if err := e.incView(ctx, id); err != nil {
			zap.L().Error("increase view count failed",
				zap.String("kind", e.kind), zap.Int64("id", id), zap.Error(err))
		}
		if encoded, err := redis_repo.EncodeJSON(snap); err == nil {
			if err := e.kv.Set(ctx, key, encoded, e.ttl); err != nil {
				zap.L().Warn("snapshot write-back failed",
					zap.String("kind", e.kind), zap.Int64("id", id), zap.Error(err))
			}
		}
	}

	stats, err := e.loadStats(ctx, id, viewer)
	if err != nil {
		return nil, models.Stats{}, err
	}
	stats.ViewCount++
	return snap, stats, nil
}

// Refresh overwrites the snapshot entry after an edit.
func (e *ItemEngine[S]) Refresh(ctx context.Context, id int64, snap S) error {
	raw, err := redis_repo.EncodeJSON(snap)
	if err != nil {
		return err
	}
	return e.kv.Set(ctx, redis_repo.ItemKey(e.kind, id), raw, e.ttl)
}

// Invalidate drops the snapshot entry; the delete scrub uses it.
func (e *ItemEngine[S]) Invalidate(ctx context.Context, id int64) error {
	return e.kv.Del(ctx, redis_repo.ItemKey(e.kind, id))
}
