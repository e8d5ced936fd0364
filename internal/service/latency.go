package service

import (
	"context"
	"fmt"
	"time"
)

// Default simulated latencies per stage.
const (
	DefaultCheckLatency   = 1000 * time.Millisecond
	DefaultPriceLatency   = 500 * time.Millisecond
	DefaultPaymentLatency = 2000 * time.Millisecond
	DefaultReserveLatency = 800 * time.Millisecond
	DefaultNotifyLatency  = 1000 * time.Millisecond
)

// simulateWork blocks for the stage's simulated processing time. The wait is
// cut short only when ctx is cancelled (worker pool shutdown), in which case
// the stage surfaces ErrInterrupted instead of a partial result.
func simulateWork(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	}
}
