package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if _, err := mc.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get(missing) error = %v, want ErrCacheMiss", err)
	}

	if err := mc.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := mc.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get() = %q, %v", got, err)
	}

	exists, _ := mc.Exists(ctx, "k")
	if !exists {
		t.Error("Exists() = false after Set")
	}

	if err := mc.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := mc.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Error("key still readable after Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, "k", []byte("v"), -time.Second)
	if _, err := mc.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Error("expired key still readable")
	}
	if exists, _ := mc.Exists(ctx, "k"); exists {
		t.Error("expired key reported as existing")
	}
}

func TestMemoryCacheClearPattern(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, "search:rating:aaaa", []byte("1"), time.Minute)
	mc.Set(ctx, "search:newest:bbbb", []byte("2"), time.Minute)
	mc.Set(ctx, "provider:cccc", []byte("3"), time.Minute)

	if err := mc.Clear(ctx, SearchKeyPattern); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if exists, _ := mc.Exists(ctx, "search:rating:aaaa"); exists {
		t.Error("search entry survived Clear")
	}
	if exists, _ := mc.Exists(ctx, "provider:cccc"); !exists {
		t.Error("unrelated entry removed by Clear")
	}
}

func TestSearchKey(t *testing.T) {
	a := SearchKey("categories=doctor", "rating", "35.70,-0.63")
	b := SearchKey("categories=doctor", "rating", "35.70,-0.63")
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "search:rating:") {
		t.Errorf("key %q missing search prefix", a)
	}
	if !matchPattern(a, SearchKeyPattern) {
		t.Errorf("key %q does not match %q", a, SearchKeyPattern)
	}

	if SearchKey("categories=doctor", "rating", "") == a {
		t.Error("different coordinates produced the same key")
	}
	if SearchKey("categories=clinic", "rating", "35.70,-0.63") == a {
		t.Error("different params produced the same key")
	}
}
