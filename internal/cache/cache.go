package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"
)

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = fmt.Errorf("cache miss")

// Cache defines the cache interface
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context, pattern string) error
	Close() error
}

// SearchKeyPattern matches every cached search-result entry
const SearchKeyPattern = "search:*"

// SearchKey builds the cache key for one search: the normalized filter
// parameters plus sort key and optional caller coordinates hash into a
// fixed-length suffix.
func SearchKey(params, sortKey, coords string) string {
	h := fnv.New64a()
	h.Write([]byte(params))
	h.Write([]byte{0})
	h.Write([]byte(sortKey))
	h.Write([]byte{0})
	h.Write([]byte(coords))
	return fmt.Sprintf("search:%s:%016x", sortKey, h.Sum64())
}
