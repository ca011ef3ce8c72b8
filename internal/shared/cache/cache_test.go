package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-bossboard/internal/shared/cache"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetOrLoad(t *testing.T) {
	s := cache.New[int](10, time.Minute)
	calls := 0
	load := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	v, err := s.GetOrLoad(context.Background(), "a", load)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = s.GetOrLoad(context.Background(), "a", load)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestStore_LoadErrorNotCached(t *testing.T) {
	s := cache.New[int](10, time.Minute)
	boom := errors.New("boom")

	_, err := s.GetOrLoad(context.Background(), "a", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Bounded(t *testing.T) {
	s := cache.New[string](2, time.Minute)
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("c", "3")

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestStore_Expires(t *testing.T) {
	s := cache.New[string](2, 20*time.Millisecond)
	s.Set("a", "1")

	assert.Eventually(t, func() bool {
		_, ok := s.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestStore_Invalidate(t *testing.T) {
	s := cache.New[string](2, time.Minute)
	s.Set("a", "1")
	s.Set("b", "2")

	s.Invalidate("a")
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Purge()
	assert.Equal(t, 0, s.Len())
}
