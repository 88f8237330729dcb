package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"laporan/internal/amqp"
)

type countingCache struct{ n atomic.Int32 }

func (c *countingCache) Invalidate() { c.n.Add(1) }

type fakeReloader struct {
	err   error
	calls int
}

func (f *fakeReloader) Reload(context.Context) error {
	f.calls++
	return f.err
}

func TestHandleLedgerChangedInvalidates(t *testing.T) {
	cache := &countingCache{}
	reloader := &fakeReloader{}
	w := NewRefreshWorker(cache, reloader, nil)

	msg := amqp.NewLedgerChangedMessage("sqlite")
	if err := w.HandleLedgerChanged(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.n.Load() != 1 || reloader.calls != 1 {
		t.Fatalf("invalidations=%d reloads=%d", cache.n.Load(), reloader.calls)
	}
}

func TestHandleLedgerChangedReloadFailure(t *testing.T) {
	cache := &countingCache{}
	w := NewRefreshWorker(cache, &fakeReloader{err: errors.New("disk")}, nil)

	if err := w.HandleLedgerChanged(context.Background(), amqp.NewLedgerChangedMessage("file")); err == nil {
		t.Fatalf("expected reload error")
	}
	if cache.n.Load() != 0 {
		t.Fatalf("cache must stay intact when reload fails")
	}
}

func TestRefreshWithoutReloader(t *testing.T) {
	cache := &countingCache{}
	w := NewRefreshWorker(cache, nil, nil)
	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.n.Load() != 1 {
		t.Fatalf("expected one invalidation")
	}
}

func TestPeriodicRefresh(t *testing.T) {
	cache := &countingCache{}
	w := NewRefreshWorker(cache, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := w.PeriodicRefresh(ctx, 10*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if cache.n.Load() == 0 {
		t.Fatalf("expected at least one refresh")
	}
}
