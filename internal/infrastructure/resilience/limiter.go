package resilience

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimiter caps simultaneous in-flight calls to one downstream
// service. Acquisition waits at most acquireWait; a timed-out acquisition is
// surfaced as an error so the paired circuit breaker counts it as a failure
// instead of blocking the request indefinitely.
type ConcurrencyLimiter struct {
	name        string
	sem         *semaphore.Weighted
	acquireWait time.Duration
}

func NewConcurrencyLimiter(name string, maxConcurrent int, acquireWait time.Duration) *ConcurrencyLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	if acquireWait <= 0 {
		acquireWait = 200 * time.Millisecond
	}
	return &ConcurrencyLimiter{
		name:        name,
		sem:         semaphore.NewWeighted(int64(maxConcurrent)),
		acquireWait: acquireWait,
	}
}

func (l *ConcurrencyLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.acquireWait)
	defer cancel()
	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		return fmt.Errorf("limiter %s: acquire: %w", l.name, err)
	}
	return nil
}

func (l *ConcurrencyLimiter) Release() {
	l.sem.Release(1)
}
