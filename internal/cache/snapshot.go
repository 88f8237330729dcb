package cache

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot caches the result of an expensive load per key. Concurrent misses
// for the same key share one load. Invalidate drops cached values and makes
// loads already in flight uncacheable, so stale data never outlives it.
type Snapshot[T any] struct {
	lru   *LRUCache[T]
	group singleflight.Group
	gen   atomic.Uint64
}

// NewSnapshot creates a Snapshot backed by an LRU of maxSize entries that
// expire after ttl.
func NewSnapshot[T any](maxSize int, ttl time.Duration) *Snapshot[T] {
	return &Snapshot[T]{lru: NewLRUCache[T](maxSize, ttl)}
}

// Get returns the cached value for key or calls load once to fill it.
// The boolean reports a cache hit.
//
// The shared load does not inherit the caller's cancellation, so load must
// bound its own duration. A caller whose ctx ends stops waiting and gets
// ctx.Err() while the load continues for the others.
func (s *Snapshot[T]) Get(ctx context.Context, key string, load func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if v, ok := s.lru.Get(key); ok {
		return v, true, nil
	}
	gen := s.gen.Load()
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		data, err := load(loadCtx)
		if err != nil {
			return data, err
		}
		if s.gen.Load() == gen {
			s.lru.Set(key, data)
		}
		return data, nil
	})
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		return res.Val.(T), false, nil
	}
}

// Invalidate drops every cached value.
func (s *Snapshot[T]) Invalidate() {
	s.gen.Add(1)
	s.lru.Purge()
}

// CleanExpired implements Cleaner.
func (s *Snapshot[T]) CleanExpired() int {
	return s.lru.CleanExpired()
}

func (s *Snapshot[T]) Size() int {
	return s.lru.Size()
}
