package health

import (
	"context"
	"log"
	"sync"
	"time"
)

// Checker is the part of a translation backend the monitor needs
type Checker interface {
	CheckHealth(ctx context.Context) (bool, error)
}

// Monitor remembers the last known backend reachability. Errors are never
// returned to callers; a failed check simply means unhealthy.
type Monitor struct {
	checker Checker
	timeout time.Duration
	logger  *log.Logger

	mu       sync.Mutex
	healthy  bool
	checked  bool
	onChange func(healthy bool)
}

// NewMonitor creates a monitor. Each check is bounded by timeout when it is
// positive.
func NewMonitor(checker Checker, timeout time.Duration, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{
		checker: checker,
		timeout: timeout,
		logger:  logger,
	}
}

// SetOnChange registers a callback fired whenever the health state flips.
// The first check always fires it.
func (m *Monitor) SetOnChange(fn func(healthy bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Check asks the backend and stores the result
func (m *Monitor) Check(ctx context.Context) bool {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	healthy, err := m.checker.CheckHealth(ctx)
	if err != nil {
		m.logger.Printf("Failed to check backend health: %v", err)
		healthy = false
	}

	m.mu.Lock()
	changed := !m.checked || m.healthy != healthy
	m.healthy = healthy
	m.checked = true
	onChange := m.onChange
	m.mu.Unlock()

	if changed && onChange != nil {
		onChange(healthy)
	}
	return healthy
}

// Healthy returns the last known state, false before the first check
func (m *Monitor) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}

// Run re-checks on every interval tick until ctx is cancelled
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
