// Package cache holds short-lived copies of catalog reads (pattern lists,
// per-pattern totals). A Store is created once at startup and handed to the
// services that use it; writers invalidate the keys they affect.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store keeps JSON-encoded values with a time-to-live.
type Store interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Keys used by the catalog.
const (
	KeyPatterns      = "catalog:patterns"
	KeyPatternTotals = "catalog:pattern_totals"
	KeyProblemCount  = "catalog:problem_count"
	KeyPatternsCount = "catalog:patterns_count"
)

// CatalogKeys are the keys dropped whenever a pattern or problem is written.
var CatalogKeys = []string{KeyPatterns, KeyPatternTotals, KeyProblemCount, KeyPatternsCount}

// Remember returns the cached value for key, or calls load, stores the
// result for ttl and returns it. Store failures fall through to load.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if s != nil {
		if err := s.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if s != nil {
		_ = s.Set(ctx, key, v, ttl)
	}
	return v, nil
}
