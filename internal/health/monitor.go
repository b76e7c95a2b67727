// Package health tracks the connectivity state towards the remote API.
//
// The monitor is pure observability: it receives advisory signals from the
// transport and optionally runs its own probe, but it never retries nor
// blocks anything.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slok/todoq/internal/log"
)

// State is the connectivity state towards the API.
type State string

const (
	// StateOnline means the API answered recently.
	StateOnline State = "online"
	// StateDegraded means the API answers but slowly.
	StateDegraded State = "degraded"
	// StateOffline means the last attempt could not reach the API.
	StateOffline State = "offline"
)

// DefaultSlowThreshold is the latency above which a probe marks the
// connection as degraded.
const DefaultSlowThreshold = 2 * time.Second

// Probe checks connectivity independently of regular traffic (e.g. a cheap
// API call). It must return an error when the API is unreachable.
type Probe func(ctx context.Context) error

// MonitorConfig is the configuration for the monitor.
type MonitorConfig struct {
	// SlowThreshold is the probe latency that moves Online to Degraded.
	SlowThreshold time.Duration
	Probe         Probe
	Logger        log.Logger

	timeNow func() time.Time
}

func (c *MonitorConfig) defaults() error {
	if c.SlowThreshold < 0 {
		return fmt.Errorf("slow threshold can't be negative")
	}
	if c.SlowThreshold == 0 {
		c.SlowThreshold = DefaultSlowThreshold
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "health.Monitor"})

	if c.timeNow == nil {
		c.timeNow = time.Now
	}

	return nil
}

// Monitor is the network health state machine. Writable only through the two
// transport signals and the probe, read-only for everyone else.
type Monitor struct {
	slowThreshold time.Duration
	probe         Probe
	logger        log.Logger
	timeNow       func() time.Time

	mu         sync.Mutex
	state      State
	lastOnline time.Time
	everOnline bool
}

// NewMonitor creates a new monitor. It starts Online, before the first
// attempt there is nothing to report.
func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Monitor{
		slowThreshold: cfg.SlowThreshold,
		probe:         cfg.Probe,
		logger:        cfg.Logger,
		timeNow:       cfg.timeNow,
		state:         StateOnline,
		lastOnline:    cfg.timeNow(),
		everOnline:    false,
	}, nil
}

// ReportSuccess signals a completed request/response exchange. Any success
// while not Online moves back to Online.
func (m *Monitor) ReportSuccess(latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateOnline {
		m.logger.Debugf("connection recovered (%s -> %s)", m.state, StateOnline)
	}
	m.state = StateOnline
	m.lastOnline = m.timeNow()
	m.everOnline = true
}

// ReportFailure signals a connection level failure and moves to Offline
// regardless of the previous state.
func (m *Monitor) ReportFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateOffline {
		m.logger.Debugf("connection lost (%s -> %s)", m.state, StateOffline)
	}
	m.state = StateOffline
}

// State returns the current connectivity state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SinceOnline returns how long ago the API last answered. The boolean is
// false when it never answered in this session.
func (m *Monitor) SinceOnline() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.everOnline {
		return 0, false
	}
	if m.state == StateOnline {
		return 0, true
	}

	return m.timeNow().Sub(m.lastOnline), true
}

// Check runs the independent probe once, feeding the state machine: failure
// moves to Offline, a slow answer to Degraded, a fast one to Online.
func (m *Monitor) Check(ctx context.Context) error {
	if m.probe == nil {
		return fmt.Errorf("no probe configured")
	}

	start := m.timeNow()
	err := m.probe(ctx)
	latency := m.timeNow().Sub(start)

	if err != nil {
		m.ReportFailure()
		return fmt.Errorf("probe failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastOnline = m.timeNow()
	m.everOnline = true
	if latency > m.slowThreshold {
		m.logger.Debugf("probe answered in %s, above the %s threshold", latency, m.slowThreshold)
		m.state = StateDegraded
	} else {
		m.state = StateOnline
	}

	return nil
}
