package redis_repo

import (
	"fmt"
	"time"

	"studyhub/settings"
)

const (
	KeyPrefix = "studyhub:"

	keyItemPrefix   = "item:"   // item:{kind}:{id} single-item static snapshot
	keyPagePrefix   = "page:"   // page:{kind}:{parent}:{n} one cached page of snapshots
	keyCursorPrefix = "cursor:" // cursor:{kind}:{parent} page-append cursor
	keyAiHistory    = "ai:history:"
	KeyGrades       = KeyPrefix + "exercise:grades"
)

func getKey(key string) string {
	return KeyPrefix + key
}

func ItemKey(kind string, id int64) string {
	return getKey(fmt.Sprintf("%s%s:%d", keyItemPrefix, kind, id))
}

func PageKey(kind string, parentId int64, page int) string {
	return getKey(fmt.Sprintf("%s%s:%d:%d", keyPagePrefix, kind, parentId, page))
}

// PagePattern matches every cached page under one parent collection; used
// by the delete scrub.
func PagePattern(kind string, parentId int64) string {
	return getKey(fmt.Sprintf("%s%s:%d:*", keyPagePrefix, kind, parentId))
}

func CursorKey(kind string, parentId int64) string {
	return getKey(fmt.Sprintf("%s%s:%d", keyCursorPrefix, kind, parentId))
}

func AiHistoryKey(userId int64) string {
	return getKey(fmt.Sprintf("%s%d", keyAiHistory, userId))
}

// TTL defaults. High-churn comment pages expire fast, single-item
// snapshots sit in the middle, slow aggregates live a day. Config may
// override each.
const (
	defaultItemTTL      = 600 * time.Second
	defaultPageTTL      = 60 * time.Second
	defaultHistoryTTL   = 3600 * time.Second
	defaultAggregateTTL = 86400 * time.Second
	defaultPageSize     = 40
)

func cacheCfg() *settings.CacheConfig {
	if settings.GlobalSettings != nil {
		return settings.GlobalSettings.CacheCfg
	}
	return nil
}

func ItemTTL() time.Duration {
	if cfg := cacheCfg(); cfg != nil && cfg.ItemTTL > 0 {
		return time.Duration(cfg.ItemTTL) * time.Second
	}
	return defaultItemTTL
}

func PageTTL() time.Duration {
	if cfg := cacheCfg(); cfg != nil && cfg.PageTTL > 0 {
		return time.Duration(cfg.PageTTL) * time.Second
	}
	return defaultPageTTL
}

func HistoryTTL() time.Duration {
	if cfg := cacheCfg(); cfg != nil && cfg.HistoryTTL > 0 {
		return time.Duration(cfg.HistoryTTL) * time.Second
	}
	return defaultHistoryTTL
}

func AggregateTTL() time.Duration {
	if cfg := cacheCfg(); cfg != nil && cfg.AggregateTTL > 0 {
		return time.Duration(cfg.AggregateTTL) * time.Second
	}
	return defaultAggregateTTL
}

func PageSize() int {
	if cfg := cacheCfg(); cfg != nil && cfg.PageSize > 0 {
		return cfg.PageSize
	}
	return defaultPageSize
}
