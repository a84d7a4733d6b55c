package translation

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker wraps a backend in a circuit breaker. While the circuit is open,
// translations fail immediately instead of waiting for a dead server. Health
// checks always go through so the monitor sees recovery.
type Breaker struct {
	backend Backend
	cb      *gobreaker.CircuitBreaker
}

// NewBreaker opens the circuit after maxFailures consecutive failures and
// keeps it open for timeout. State changes are logged to logger.
func NewBreaker(backend Backend, maxFailures uint32, timeout time.Duration, logger *log.Logger) *Breaker {
	if logger == nil {
		logger = log.Default()
	}
	settings := gobreaker.Settings{
		Name:        backend.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("Backend %s circuit breaker: %s -> %s", name, from, to)
		},
	}
	return &Breaker{
		backend: backend,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider name
func (b *Breaker) Name() string {
	return b.backend.Name()
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Translate runs the wrapped translation through the breaker
func (b *Breaker) Translate(ctx context.Context, req *Request) (*Response, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.backend.Translate(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Response), nil
}

// CheckHealth bypasses the breaker
func (b *Breaker) CheckHealth(ctx context.Context) (bool, error) {
	return b.backend.CheckHealth(ctx)
}

// ListModels delegates when the wrapped backend supports it
func (b *Breaker) ListModels(ctx context.Context) ([]string, error) {
	if lister, ok := b.backend.(ModelLister); ok {
		return lister.ListModels(ctx)
	}
	return nil, nil
}

// Unwrap returns the wrapped backend
func (b *Breaker) Unwrap() Backend {
	return b.backend
}
