package resilience

import (
	"context"
	"sync"
	"time"
)

type Config struct {
	FailureThreshold int
	RecoveryTimeout  time.Duration
	MaxConcurrent    int
	AcquireWait      time.Duration
	CallTimeout      time.Duration
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		MaxConcurrent:    8,
		AcquireWait:      200 * time.Millisecond,
		CallTimeout:      2 * time.Second,
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()
	if out.FailureThreshold <= 0 {
		out.FailureThreshold = def.FailureThreshold
	}
	if out.RecoveryTimeout <= 0 {
		out.RecoveryTimeout = def.RecoveryTimeout
	}
	if out.MaxConcurrent <= 0 {
		out.MaxConcurrent = def.MaxConcurrent
	}
	if out.AcquireWait <= 0 {
		out.AcquireWait = def.AcquireWait
	}
	if out.CallTimeout <= 0 {
		out.CallTimeout = def.CallTimeout
	}
	return out
}

// Guard pairs the circuit breaker and concurrency limiter for one downstream
// service name.
type Guard struct {
	Breaker     *CircuitBreaker
	Limiter     *ConcurrencyLimiter
	CallTimeout time.Duration
}

// Registry hands out one Guard per service name. Guards are created lazily
// and shared process-wide across concurrent requests.
type Registry struct {
	cfg           Config
	onStateChange StateChangeHook

	mu     sync.Mutex
	guards map[string]*Guard
}

func NewRegistry(cfg Config, onStateChange StateChangeHook) *Registry {
	return &Registry{
		cfg:           cfg.normalize(),
		onStateChange: onStateChange,
		guards:        make(map[string]*Guard),
	}
}

func (r *Registry) Guard(service string) *Guard {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.guards[service]; ok {
		return g
	}
	breaker := NewCircuitBreaker(service, r.cfg.FailureThreshold, r.cfg.RecoveryTimeout)
	if r.onStateChange != nil {
		breaker.SetStateChangeHook(r.onStateChange)
	}
	g := &Guard{
		Breaker:     breaker,
		Limiter:     NewConcurrencyLimiter(service, r.cfg.MaxConcurrent, r.cfg.AcquireWait),
		CallTimeout: r.cfg.CallTimeout,
	}
	r.guards[service] = g
	return g
}

// Execute runs fn through the guard: breaker admission first, then a bounded
// limiter acquisition, then the call itself under its own timeout. The slot
// is released on every exit path, and any failure inside the window counts
// against the breaker.
func Execute[T any](ctx context.Context, g *Guard, fn func(context.Context) (T, error), fallback T) T {
	return Call(ctx, g.Breaker, func(ctx context.Context) (T, error) {
		if err := g.Limiter.Acquire(ctx); err != nil {
			return fallback, err
		}
		defer g.Limiter.Release()

		callCtx, cancel := context.WithTimeout(ctx, g.CallTimeout)
		defer cancel()
		return fn(callCtx)
	}, fallback)
}
