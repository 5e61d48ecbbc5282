package cache

import (
	"errors"
	"time"

	"studyhub/dao/mysql_repo"
	"studyhub/models"
	"studyhub/pkg/sqls"

	"github.com/goburrow/cache"
)

var ERROR_DATA_NOT_EXISTS = errors.New("data not exists")

func key2Int64(key cache.Key) int64 {
	if v, ok := key.(int64); ok {
		return v
	}
	return 0
}

// userCache is a small in-process loading cache for author display
// profiles; the write paths use it to resolve author names when building
// static snapshots without hitting the store per create.
type userCache struct {
	cache cache.LoadingCache
}

var UserCache = newUserCache()

func newUserCache() *userCache {
	return &userCache{
		cache: cache.NewLoadingCache(
			func(key cache.Key) (value cache.Value, err error) {
				user := mysql_repo.UserRepository.Get(sqls.DB(), key2Int64(key))
				if user == nil {
					return nil, ERROR_DATA_NOT_EXISTS
				}
				return user, nil
			},
			cache.WithMaximumSize(1000),
			cache.WithExpireAfterAccess(30*time.Minute),
		),
	}
}

func (c *userCache) Get(userId int64) *models.User {
	if userId <= 0 {
		return nil
	}
	val, err := c.cache.Get(userId)
	if err != nil {
		return nil
	}
	return val.(*models.User)
}

func (c *userCache) Invalidate(userId int64) {
	c.cache.Invalidate(userId)
}
