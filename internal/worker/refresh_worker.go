package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"laporan/internal/amqp"
)

// Invalidator drops cached report data.
type Invalidator interface {
	Invalidate()
}

// Reloader is implemented by ledgers that keep their own in-process copy.
type Reloader interface {
	Reload(ctx context.Context) error
}

// RefreshWorker keeps cached report data in step with the ledger.
type RefreshWorker struct {
	cache    Invalidator
	reloader Reloader
	logger   *slog.Logger
}

// NewRefreshWorker creates a worker. reloader may be nil.
func NewRefreshWorker(cache Invalidator, reloader Reloader, logger *slog.Logger) *RefreshWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshWorker{
		cache:    cache,
		reloader: reloader,
		logger:   logger,
	}
}

// HandleLedgerChanged processes one notification from the ledger owner.
// A failed reload is returned so the message is requeued.
func (w *RefreshWorker) HandleLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	w.logger.InfoContext(ctx, "Ledger changed",
		"source", msg.Source,
		"months", msg.Months,
		"timestamp", msg.Timestamp)

	return w.Refresh(ctx)
}

// Refresh reloads the ledger if possible, then invalidates the cache.
func (w *RefreshWorker) Refresh(ctx context.Context) error {
	if w.reloader != nil {
		if err := w.reloader.Reload(ctx); err != nil {
			return fmt.Errorf("reload ledger: %w", err)
		}
	}
	w.cache.Invalidate()
	return nil
}

// PeriodicRefresh calls Refresh every interval until ctx is done. It is
// used when no change notifications are configured.
func (w *RefreshWorker) PeriodicRefresh(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.InfoContext(ctx, "Starting periodic ledger refresh", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				w.logger.WarnContext(ctx, "Periodic ledger refresh failed", "error", err)
			}
		}
	}
}
