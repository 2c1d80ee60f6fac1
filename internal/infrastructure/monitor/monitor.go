package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/pkg/clock"
)

// Pinger is anything that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type check struct {
	name     string
	required bool
	pinger   Pinger
}

// Monitor runs dependency checks on demand. Optional dependencies are
// reported but do not make the service unhealthy.
type Monitor struct {
	timeout time.Duration
	clock   clock.Clock
	logger  *zap.Logger

	mu     sync.RWMutex
	checks []check
}

func New(timeout time.Duration, clk clock.Clock, logger *zap.Logger) *Monitor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		timeout: timeout,
		clock:   clk,
		logger:  logger,
	}
}

// Register adds a named dependency. Nil pingers are ignored.
func (m *Monitor) Register(name string, required bool, p Pinger) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks = append(m.checks, check{name: name, required: required, pinger: p})
}

// Check pings every registered dependency concurrently.
func (m *Monitor) Check(ctx context.Context) Status {
	m.mu.RLock()
	checks := append([]check(nil), m.checks...)
	m.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	results := make([]CheckResult, len(checks))
	var wg sync.WaitGroup
	for i, c := range checks {
		wg.Add(1)
		go func(i int, c check) {
			defer wg.Done()
			res := CheckResult{Online: true, Required: c.required}
			if err := c.pinger.Ping(ctx); err != nil {
				res.Online = false
				res.Error = err.Error()
				m.logger.Warn("dependency check failed", zap.String("dependency", c.name), zap.Error(err))
			}
			results[i] = res
		}(i, c)
	}
	wg.Wait()

	status := Status{
		Healthy:   true,
		Checks:    make(map[string]CheckResult, len(checks)),
		CheckedAt: m.clock.Now().UTC(),
	}
	for i, c := range checks {
		status.Checks[c.name] = results[i]
		if c.required && !results[i].Online {
			status.Healthy = false
		}
	}
	return status
}
