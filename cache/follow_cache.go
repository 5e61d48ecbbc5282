package cache

import (
	"strconv"
	"sync"

	"studyhub/settings"

	"github.com/coocood/freecache"
)

var followCounter *FollowCounter

// FollowCounter keeps in-process fan/following counters so follow-heavy
// pages do not hammer the store; the kafka consumer reconciles the
// authoritative numbers in batches.
type FollowCounter struct {
	cache *freecache.Cache
	mutex sync.RWMutex
}

func InitFollowCounter(config *settings.FreeCacheConfig) {
	size := 10 * 1024 * 1024
	if config != nil && config.CacheSize > 0 {
		size = config.CacheSize
	}
	followCounter = &FollowCounter{cache: freecache.NewCache(size)}
}

func Follows() *FollowCounter {
	return followCounter
}

func (c *FollowCounter) increment(key []byte, delta int) (int, error) {
	value, err := c.cache.Get(key)
	if err != nil {
		value = []byte("0")
	}
	current, _ := strconv.Atoi(string(value))
	current += delta
	if err := c.cache.Set(key, []byte(strconv.Itoa(current)), 0); err != nil {
		return 0, err
	}
	return current, nil
}

// Apply adjusts both sides of a follow/unfollow: the target's fan count
// and the follower's following count.
func (c *FollowCounter) Apply(userId, targetUserId int64, action int8) (err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	fansKey := []byte("fans:" + strconv.FormatInt(targetUserId, 10))
	followKey := []byte("follow:" + strconv.FormatInt(userId, 10))

	delta := 1
	if action != 1 {
		delta = -1
	}
	if _, err = c.increment(fansKey, delta); err != nil {
		return err
	}
	_, err = c.increment(followKey, delta)
	return err
}

// Fans returns the cached fan counter; ok is false when there is no entry
// yet and the caller should count from the store and seed it.
func (c *FollowCounter) Fans(userId int64) (int64, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	value, err := c.cache.Get([]byte("fans:" + strconv.FormatInt(userId, 10)))
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SeedFans installs a store-derived fan count.
func (c *FollowCounter) SeedFans(userId, count int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	_ = c.cache.Set([]byte("fans:"+strconv.FormatInt(userId, 10)),
		[]byte(strconv.FormatInt(count, 10)), 0)
}
