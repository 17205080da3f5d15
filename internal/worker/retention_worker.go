package worker

import (
	"context"
	"log/slog"
	"time"
)

// Purger removes rejected applicants older than the given age and reports how
// many were deleted.
type Purger interface {
	PurgeRejectedOlderThan(age time.Duration) (int64, error)
}

// RetentionWorker periodically purges rejected applicants that have aged out
// of the retention window.
type RetentionWorker struct {
	purger   Purger
	logger   *slog.Logger
	interval time.Duration
	maxAge   time.Duration
}

// NewRetentionWorker creates a new retention worker
func NewRetentionWorker(purger Purger, logger *slog.Logger, interval, maxAge time.Duration) *RetentionWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionWorker{purger: purger, logger: logger, interval: interval, maxAge: maxAge}
}

// Start begins the retention loop. It runs one pass immediately, then keeps
// ticking until the context is cancelled.
func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("retention worker started",
		slog.Duration("interval", w.interval),
		slog.Duration("max_age", w.maxAge),
	)

	w.runOnce()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("retention worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *RetentionWorker) runOnce() {
	purged, err := w.purger.PurgeRejectedOlderThan(w.maxAge)
	if err != nil {
		w.logger.Error("retention purge failed", slog.String("error", err.Error()))
		return
	}
	if purged > 0 {
		w.logger.Info("retention purge completed", slog.Int64("purged", purged))
	}
}
