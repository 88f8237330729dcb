package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a should survive, got %v %v", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[string](10, time.Minute)
	c.now = func() time.Time { return now }
	c.Set("k", "v")
	c.Set("k2", "v2")

	now = now.Add(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("entry expired too early")
	}
	now = now.Add(31 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("entry should be expired")
	}
	if removed := c.CleanExpired(); removed != 1 {
		t.Fatalf("CleanExpired removed %d, want 1", removed)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	if c.Size() != 0 {
		t.Fatalf("size after purge = %d", c.Size())
	}
	c.Set("a", 3)
	if v, ok := c.Get("a"); !ok || v != 3 {
		t.Fatalf("cache unusable after purge")
	}
}

func TestSnapshotLoadsOnceConcurrently(t *testing.T) {
	s := NewSnapshot[[]int](4, time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) ([]int, error) {
		calls.Add(1)
		<-release
		return []int{1, 2, 3}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, _, err := s.Get(context.Background(), "ledger", load); err != nil || len(v) != 3 {
				t.Errorf("unexpected result %v %v", v, err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("load called %d times, want 1", n)
	}
	if _, hit, _ := s.Get(context.Background(), "ledger", load); !hit {
		t.Fatalf("expected cache hit after load")
	}
}

func TestSnapshotCallerCancelDoesNotFailOthers(t *testing.T) {
	s := NewSnapshot[int](4, time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		close(started)
		select {
		case <-release:
			return 42, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := s.Get(firstCtx, "ledger", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, _, err := s.Get(context.Background(), "ledger", load)
		second <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to see context.Canceled, got %v", err)
	}
	close(release)

	res := <-second
	if res.err != nil || res.v != 42 {
		t.Fatalf("expected second caller to get 42, got %d (err=%v)", res.v, res.err)
	}
	if _, hit, _ := s.Get(context.Background(), "ledger", load); !hit {
		t.Fatalf("expected the shared load to be cached")
	}
}

func TestSnapshotInvalidate(t *testing.T) {
	s := NewSnapshot[int](4, time.Minute)
	n := 0
	load := func(context.Context) (int, error) {
		n++
		return n, nil
	}
	v, _, _ := s.Get(context.Background(), "k", load)
	if v != 1 {
		t.Fatalf("first load = %d", v)
	}
	s.Invalidate()
	v, hit, _ := s.Get(context.Background(), "k", load)
	if hit || v != 2 {
		t.Fatalf("expected reload after invalidate, got %d hit=%v", v, hit)
	}
}

func TestSnapshotInvalidateDuringLoadIsNotCached(t *testing.T) {
	s := NewSnapshot[int](4, time.Minute)
	load := func(context.Context) (int, error) {
		s.Invalidate()
		return 1, nil
	}
	if v, _, err := s.Get(context.Background(), "k", load); err != nil || v != 1 {
		t.Fatalf("unexpected %d %v", v, err)
	}
	if s.Size() != 0 {
		t.Fatalf("stale load was cached")
	}
}

func TestSnapshotErrorNotCached(t *testing.T) {
	s := NewSnapshot[int](4, time.Minute)
	boom := errors.New("boom")
	if _, _, err := s.Get(context.Background(), "k", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s.Size() != 0 {
		t.Fatalf("error result cached")
	}
}

func TestManagerCleanNow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](4, time.Second)
	c.now = func() time.Time { return now }
	c.Set("a", 1)
	now = now.Add(2 * time.Second)

	m := NewManager(nil)
	m.Register(c)
	if removed := m.CleanNow(); removed != 1 {
		t.Fatalf("removed %d, want 1", removed)
	}
	m.StartCleanup(time.Hour)
	m.Stop()
}
