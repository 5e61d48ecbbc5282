package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyhub/settings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var rdb *redis.Client

func Init(cfg *settings.RedisConfig) (err error) {
	rdb = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
		PoolSize: cfg.PoolSize,
	})
	_, err = rdb.Ping(context.Background()).Result()
	return
}

func Close() {
	_ = rdb.Close()
}

// Store wraps the redis client behind the key/value surface the cache
// engines consume: get, set with TTL, ordered multi-get, delete and
// incremental pattern scan.
type Store struct {
	rdb *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{rdb: client}
}

// DefaultStore returns a Store over the globally initialized client. The
// client is resolved per call so the Store may be constructed before Init.
func DefaultStore() *Store {
	return &Store{}
}

func (s *Store) client() *redis.Client {
	if s.rdb != nil {
		return s.rdb
	}
	return rdb
}

// Get returns the raw value and a hit flag. A missing key is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client().Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client().Set(ctx, key, value, ttl).Err()
}

// MGet preserves input order; absent keys come back as nil entries.
func (s *Store) MGet(ctx context.Context, keys ...string) ([]*string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := s.client().MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*string, len(keys))
	for i, v := range vals {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		out[i] = &str
	}
	return out, nil
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client().Del(ctx, keys...).Err()
}

// ScanKeys walks the keyspace incrementally instead of blocking on KEYS.
// Cost is proportional to the keys under the pattern's namespace.
func (s *Store) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := s.client().Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// Every cached value is wrapped in a versioned envelope so a future shape
// change invalidates old entries by version instead of a blind flush.
const envelopeVersion = 1

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

// GetJSON unmarshals the envelope payload into dest. A version mismatch
// counts as a miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, hit, err := s.Get(ctx, key)
	if err != nil || !hit {
		return false, err
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		zap.L().Warn("cache entry is not a valid envelope, treating as miss",
			zap.String("key", key), zap.Error(err))
		return false, nil
	}
	if env.V != envelopeVersion {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		zap.L().Warn("cache entry payload unmarshal failed, treating as miss",
			zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope{V: envelopeVersion, Data: data})
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(payload), ttl)
}

// EncodeJSON wraps a value in the versioned envelope, producing the raw
// string form the engines hand to Set.
func EncodeJSON(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(envelope{V: envelopeVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// DecodeJSON unpacks one raw envelope value, as handed back by MGet.
func DecodeJSON(raw string, dest interface{}) bool {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return false
	}
	if env.V != envelopeVersion {
		return false
	}
	return json.Unmarshal(env.Data, dest) == nil
}

// AppendList appends one element to a JSON-array value. There is no native
// list type assumed; the whole array is rewritten. maxLen trims the oldest
// entries from the front when positive.
func (s *Store) AppendList(ctx context.Context, key string, elem interface{}, ttl time.Duration, maxLen int) error {
	var list []json.RawMessage
	if _, err := s.GetJSON(ctx, key, &list); err != nil {
		return err
	}
	data, err := json.Marshal(elem)
	if err != nil {
		return err
	}
	list = append(list, data)
	if maxLen > 0 && len(list) > maxLen {
		list = list[len(list)-maxLen:]
	}
	return s.SetJSON(ctx, key, list, ttl)
}
