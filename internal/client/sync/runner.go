package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Runner drains a manager's queue periodically while it is connected.
// Failed items are retried after an exponential, capped, jittered backoff;
// the backoff starts over after a round without retryable failures.
type Runner struct {
	manager    *Manager
	logger     *slog.Logger
	newBackoff func() retry.Backoff
	interval   time.Duration
}

// NewRunner creates a runner that attempts a sync every interval.
// Retry delays start at baseDelay and never exceed maxDelay.
func NewRunner(manager *Manager, interval, baseDelay, maxDelay time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		manager:  manager,
		logger:   logger,
		interval: interval,
		newBackoff: func() retry.Backoff {
			b := retry.NewExponential(baseDelay)
			b = retry.WithCappedDuration(maxDelay, b)
			return retry.WithJitterPercent(10, b)
		},
	}
}

// Run blocks until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	backoff := r.newBackoff()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		retried, err := r.Step(ctx, backoff)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Warn("Background sync failed", "error", err)
			continue
		}
		if !retried {
			backoff = r.newBackoff()
		}
	}
}

// Step performs one sync round. When items failed with retries left, it
// waits for the next backoff delay and moves them back to Pending.
// It reports whether a retry was scheduled.
func (r *Runner) Step(ctx context.Context, backoff retry.Backoff) (bool, error) {
	if !r.manager.IsConnected() {
		return false, nil
	}

	if _, err := r.manager.Sync(ctx); err != nil && !errors.Is(err, ErrNoConnection) {
		return false, err
	}

	if r.manager.RetryableCount() == 0 {
		return false, nil
	}

	delay, stop := backoff.Next()
	if stop {
		return false, nil
	}

	r.logger.Debug("Scheduling retry of failed items", "delay", delay, "items", r.manager.RetryableCount())

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	if _, err := r.manager.RetryFailed(ctx); err != nil {
		return true, err
	}
	return true, nil
}
