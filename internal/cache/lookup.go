// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// lookup.go provides a short-lived Valkey cache for the option lists that
// feed the dashboard's dependent dropdowns (category types, categories by
// type, courses, free resources). Every mutation of an entity family drops
// that family's keys, so the cache only saves repeated reads while forms
// are being filled in.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// lookupKeyPrefix is the Valkey key prefix for cached option lists.
	lookupKeyPrefix = "lookup:"

	// DefaultLookupTTL is how long an option list stays cached.
	DefaultLookupTTL = 60 * time.Second
)

// Entity families whose option lists are cached.
const (
	FamilyCategoryTypes = "category-types"
	FamilyCategories    = "categories"
	FamilyCourses       = "courses"
	FamilyFreeResources = "free-resources"
)

// LookupCache stores JSON-encoded option lists in Valkey. A nil
// *LookupCache is valid and never hits.
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLookupCache creates a lookup cache backed by the given Valkey client.
func NewLookupCache(client *redis.Client, ttl time.Duration) *LookupCache {
	if ttl == 0 {
		ttl = DefaultLookupTTL
	}
	return &LookupCache{client: client, ttl: ttl}
}

// Key builds a cache key inside a family, e.g. Key("categories", "3").
func Key(family string, parts ...string) string {
	if len(parts) == 0 {
		return family
	}
	return family + ":" + strings.Join(parts, ":")
}

// Get decodes the cached value for key into dst. Reports whether it hit.
func (lc *LookupCache) Get(ctx context.Context, key string, dst any) bool {
	if lc == nil || lc.client == nil {
		return false
	}
	val, err := lc.client.Get(ctx, lookupKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("lookup cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("lookup cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("lookup cache hit", "key", key)
	return true
}

// Set stores v under key with the configured TTL.
func (lc *LookupCache) Set(ctx context.Context, key string, v any) {
	if lc == nil || lc.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("lookup cache encode error", "key", key, "error", err)
		return
	}
	if err := lc.client.Set(ctx, lookupKeyPrefix+key, data, lc.ttl).Err(); err != nil {
		slog.Warn("lookup cache set error", "key", key, "error", err)
	}
}

// Invalidate removes every key of the given families by scanning for
// their prefixes.
func (lc *LookupCache) Invalidate(ctx context.Context, families ...string) {
	if lc == nil || lc.client == nil {
		return
	}
	for _, family := range families {
		lc.invalidateFamily(ctx, family)
	}
}

func (lc *LookupCache) invalidateFamily(ctx context.Context, family string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, lookupKeyPrefix+family+"*", 100).Result()
		if err != nil {
			slog.Warn("lookup cache scan error", "family", family, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("lookup cache bulk delete error", "family", family, "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("lookup cache invalidated", "family", family, "deleted", deleted)
	}
}

// Fetch returns the cached value for key, or calls load and caches its
// result. Load errors are returned as-is and nothing is cached.
func Fetch[T any](ctx context.Context, lc *LookupCache, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	if lc.Get(ctx, key, &v) {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	lc.Set(ctx, key, v)
	return v, nil
}
