package cache

import (
	"context"
	"time"

	"studyhub/dao/redis_repo"
)

// PageCursor tracks where the next created item appends inside a parent
// collection's cached pages, independent of the offset/limit paging the
// store computes.
type PageCursor struct {
	CurrentItemAmount int `json:"currentItemAmount"`
	LastPage          int `json:"lastPage"`
}

// CursorTracker maintains the per-collection cursor records. It is a
// best-effort, non-transactional counter: two concurrent creates can read
// the same state before either writes back, which at worst leaves one
// page a single item over or under size. Short TTLs bound the drift.
type CursorTracker struct {
	kv  KV
	ttl time.Duration
}

func NewCursorTracker(kv KV, ttl time.Duration) *CursorTracker {
	return &CursorTracker{kv: kv, ttl: ttl}
}

// NextSlot advances the cursor and returns the page the new item belongs
// on. A missing cursor initializes to {0,1}; a full page rolls over to
// {1, lastPage+1}.
func (t *CursorTracker) NextSlot(ctx context.Context, key string, pageSize int) (int, error) {
	cur := PageCursor{CurrentItemAmount: 0, LastPage: 1}
	raw, hit, err := t.kv.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if hit {
		var stored PageCursor
		if redis_repo.DecodeJSON(raw, &stored) && stored.LastPage > 0 {
			cur = stored
		}
	}

	if cur.CurrentItemAmount >= pageSize {
		cur.CurrentItemAmount = 1
		cur.LastPage++
	} else {
		cur.CurrentItemAmount++
	}

	encoded, err := redis_repo.EncodeJSON(cur)
	if err != nil {
		return 0, err
	}
	// Same TTL policy as the pages it points into.
	if err := t.kv.Set(ctx, key, encoded, t.ttl); err != nil {
		return 0, err
	}
	return cur.LastPage, nil
}

// Peek reads the cursor without advancing it.
func (t *CursorTracker) Peek(ctx context.Context, key string) (PageCursor, bool, error) {
	raw, hit, err := t.kv.Get(ctx, key)
	if err != nil || !hit {
		return PageCursor{}, false, err
	}
	var cur PageCursor
	if !redis_repo.DecodeJSON(raw, &cur) {
		return PageCursor{}, false, nil
	}
	return cur, true, nil
}
