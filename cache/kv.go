package cache

import (
	"context"
	"time"
)

// KV is the key/value capability the engines run on. redis_repo.Store is
// the production implementation; tests swap in an in-memory fake.
type KV interface {
	// Get returns the raw value and a hit flag; a missing key is not an
	// error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// MGet preserves input order, absent keys come back nil.
	MGet(ctx context.Context, keys ...string) ([]*string, error)
	Del(ctx context.Context, keys ...string) error
	// ScanKeys is an incremental pattern scan, never a blocking KEYS.
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
}
