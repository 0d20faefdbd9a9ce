package resilience

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAcquireRelease(t *testing.T) {
	l := NewConcurrencyLimiter("svc", 2, 50*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	l.Release()
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() after Release() error = %v", err)
	}
}

func TestLimiterAcquireTimesOutWhenFull(t *testing.T) {
	l := NewConcurrencyLimiter("svc", 1, 20*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	start := time.Now()
	err := l.Acquire(ctx)
	if err == nil {
		t.Fatalf("expected acquire timeout with full limiter")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("acquire blocked for %v, want bounded wait", elapsed)
	}
}

func TestLimiterHonorsCallerCancellation(t *testing.T) {
	l := NewConcurrencyLimiter("svc", 1, time.Minute)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Acquire(ctx); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}
