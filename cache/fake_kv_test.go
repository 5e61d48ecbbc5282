package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

var errKVDown = errors.New("kv down")

// fakeKV is an in-memory KV for engine tests, with per-op failure
// switches to exercise the degraded paths.
type fakeKV struct {
	data map[string]string

	failGet  bool
	failMGet bool
	failSet  bool

	getCalls  int
	mgetCalls int
	setCalls  int
	delCalls  int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.getCalls++
	if f.failGet {
		return "", false, errKVDown
	}
	val, ok := f.data[key]
	return val, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.setCalls++
	if f.failSet {
		return errKVDown
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) MGet(ctx context.Context, keys ...string) ([]*string, error) {
	f.mgetCalls++
	if f.failMGet {
		return nil, errKVDown
	}
	out := make([]*string, len(keys))
	for i, key := range keys {
		if val, ok := f.data[key]; ok {
			v := val
			out[i] = &v
		}
	}
	return out, nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	f.delCalls++
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
