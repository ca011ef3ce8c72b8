package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Store is a bounded, TTL-expiring, per-key cache. Concurrent misses on the
// same key share a single load.
type Store[V any] struct {
	lru *expirable.LRU[string, V]
	sf  singleflight.Group
}

func New[V any](size int, ttl time.Duration) *Store[V] {
	if size <= 0 {
		size = 1
	}
	return &Store[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

func (s *Store[V]) Get(key string) (V, bool) {
	return s.lru.Get(key)
}

func (s *Store[V]) Set(key string, v V) {
	s.lru.Add(key, v)
}

// GetOrLoad returns the cached value or runs load once for all waiting callers.
// Failed loads are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := s.lru.Get(key); ok {
		return v, nil
	}

	res, err, _ := s.sf.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		s.lru.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (s *Store[V]) Invalidate(key string) {
	s.lru.Remove(key)
}

func (s *Store[V]) Purge() {
	s.lru.Purge()
}

func (s *Store[V]) Len() int {
	return s.lru.Len()
}
