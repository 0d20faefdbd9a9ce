package resilience

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// StateChangeHook observes breaker transitions, e.g. for metrics.
type StateChangeHook func(service string, from, to BreakerState)

// CircuitBreaker guards one downstream service. State is process-wide and
// shared across requests: consecutive failures trip it OPEN, calls then
// short-circuit to the fallback until the recovery timeout elapses, after
// which exactly one trial call probes the dependency.
type CircuitBreaker struct {
	name             string
	failureThreshold int
	recoveryTimeout  time.Duration
	onStateChange    StateChangeHook

	mu            sync.Mutex
	state         BreakerState
	failures      int
	openedAt      time.Time
	trialInFlight bool
}

func NewCircuitBreaker(name string, failureThreshold int, recoveryTimeout time.Duration) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if recoveryTimeout <= 0 {
		recoveryTimeout = 30 * time.Second
	}
	return &CircuitBreaker{
		name:             name,
		failureThreshold: failureThreshold,
		recoveryTimeout:  recoveryTimeout,
	}
}

func (b *CircuitBreaker) SetStateChangeHook(hook StateChangeHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onStateChange = hook
}

func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// allow decides admission. trial marks the single HALF_OPEN probe; its
// outcome alone decides the next state.
func (b *CircuitBreaker) allow(now time.Time) (admit, trial bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true, false
	case StateOpen:
		if now.Sub(b.openedAt) < b.recoveryTimeout {
			return false, false
		}
		b.transition(StateHalfOpen)
		b.trialInFlight = true
		return true, true
	default: // StateHalfOpen
		if b.trialInFlight {
			return false, false
		}
		b.trialInFlight = true
		return true, true
	}
}

func (b *CircuitBreaker) record(trial, success bool, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if trial {
		b.trialInFlight = false
		if success {
			b.transition(StateClosed)
			b.failures = 0
			return
		}
		b.transition(StateOpen)
		b.openedAt = now
		return
	}

	// Results of regular CLOSED-state calls that land after a transition
	// must not disturb OPEN/HALF_OPEN bookkeeping.
	if b.state != StateClosed {
		return
	}
	if success {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.transition(StateOpen)
		b.openedAt = now
	}
}

// transition must be called with b.mu held.
func (b *CircuitBreaker) transition(to BreakerState) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	slog.Warn("circuit_breaker_state_change",
		"service", b.name,
		"from", from.String(),
		"to", to.String(),
	)
	if b.onStateChange != nil {
		b.onStateChange(b.name, from, to)
	}
}

// Call is the sole entry point. The caller always receives either the real
// result or the fallback; the wrapped function's error never escapes.
func Call[T any](ctx context.Context, b *CircuitBreaker, fn func(context.Context) (T, error), fallback T) T {
	admit, trial := b.allow(time.Now())
	if !admit {
		return fallback
	}

	out, err := fn(ctx)
	b.record(trial, err == nil, time.Now())
	if err != nil {
		return fallback
	}
	return out
}
