// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, lookupKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := ConnectValkey(ctx, host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		family string
		parts  []string
		want   string
	}{
		{FamilyCourses, nil, "courses"},
		{FamilyCategories, []string{"3"}, "categories:3"},
		{FamilyCategories, []string{"type", "7"}, "categories:type:7"},
	}
	for _, tt := range tests {
		if got := Key(tt.family, tt.parts...); got != tt.want {
			t.Errorf("Key(%q, %v) = %q, want %q", tt.family, tt.parts, got, tt.want)
		}
	}
}

func TestNilLookupCache(t *testing.T) {
	var lc *LookupCache
	ctx := context.Background()

	lc.Set(ctx, "x", 1)
	lc.Invalidate(ctx, FamilyCourses)
	var v int
	if lc.Get(ctx, "x", &v) {
		t.Error("nil cache should never hit")
	}

	calls := 0
	for i := 0; i < 2; i++ {
		got, err := Fetch(ctx, lc, "x", func(context.Context) (int, error) {
			calls++
			return 7, nil
		})
		if err != nil || got != 7 {
			t.Fatalf("Fetch = %d, %v", got, err)
		}
	}
	if calls != 2 {
		t.Errorf("loader calls = %d, want 2 without a cache", calls)
	}
}

func TestLookupCacheSetAndGet(t *testing.T) {
	lc := NewLookupCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	var got []option
	if lc.Get(ctx, Key(FamilyCategoryTypes), &got) {
		t.Fatal("expected cache miss")
	}

	want := []option{{ID: "1", Name: "Course"}}
	lc.Set(ctx, Key(FamilyCategoryTypes), want)

	if !lc.Get(ctx, Key(FamilyCategoryTypes), &got) {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Name != "Course" {
		t.Errorf("got %+v", got)
	}
}

func TestLookupCacheFetch(t *testing.T) {
	lc := NewLookupCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]option, error) {
		calls++
		return []option{{ID: "5", Name: "Go"}}, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := Fetch(ctx, lc, Key(FamilyCourses), load); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("loader calls = %d, want 1", calls)
	}

	failing := func(context.Context) ([]option, error) { return nil, errors.New("boom") }
	if _, err := Fetch(ctx, lc, Key(FamilyFreeResources), failing); err == nil {
		t.Error("expected loader error")
	}
	var v []option
	if lc.Get(ctx, Key(FamilyFreeResources), &v) {
		t.Error("failed loads must not be cached")
	}
}

func TestLookupCacheInvalidate(t *testing.T) {
	lc := NewLookupCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	lc.Set(ctx, Key(FamilyCategories), []option{})
	lc.Set(ctx, Key(FamilyCategories, "1"), []option{})
	lc.Set(ctx, Key(FamilyCategories, "2"), []option{})
	lc.Set(ctx, Key(FamilyCourses), []option{})

	lc.Invalidate(ctx, FamilyCategories)

	var v []option
	for _, key := range []string{Key(FamilyCategories), Key(FamilyCategories, "1"), Key(FamilyCategories, "2")} {
		if lc.Get(ctx, key, &v) {
			t.Errorf("expected miss for %q after Invalidate", key)
		}
	}
	if !lc.Get(ctx, Key(FamilyCourses), &v) {
		t.Error("other families should survive")
	}
}

func TestNewLookupCacheDefaultTTL(t *testing.T) {
	lc := NewLookupCache(nil, 0)
	if lc.ttl != DefaultLookupTTL {
		t.Errorf("expected DefaultLookupTTL (%v), got %v", DefaultLookupTTL, lc.ttl)
	}
}
