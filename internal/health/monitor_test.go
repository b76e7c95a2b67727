package health_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/todoq/internal/health"
)

func TestMonitorTransitions(t *testing.T) {
	tests := map[string]struct {
		signals  func(m *health.Monitor)
		expState health.State
	}{
		"a fresh monitor should be online": {
			signals:  func(m *health.Monitor) {},
			expState: health.StateOnline,
		},

		"a failure should move to offline": {
			signals: func(m *health.Monitor) {
				m.ReportFailure()
			},
			expState: health.StateOffline,
		},

		"a success after a failure should move back to online": {
			signals: func(m *health.Monitor) {
				m.ReportFailure()
				m.ReportSuccess(10 * time.Millisecond)
			},
			expState: health.StateOnline,
		},

		"repeated failures should stay offline": {
			signals: func(m *health.Monitor) {
				m.ReportFailure()
				m.ReportFailure()
				m.ReportFailure()
			},
			expState: health.StateOffline,
		},

		"a slow success signal should not degrade, only probes judge latency": {
			signals: func(m *health.Monitor) {
				m.ReportSuccess(10 * time.Second)
			},
			expState: health.StateOnline,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			m, err := health.NewMonitor(health.MonitorConfig{})
			require.NoError(t, err)

			test.signals(m)

			assert.Equal(test.expState, m.State())
		})
	}
}

func TestMonitorSinceOnline(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m, err := health.NewMonitor(health.MonitorConfig{})
	require.NoError(err)

	// Nothing has answered yet.
	_, ok := m.SinceOnline()
	assert.False(ok)

	m.ReportSuccess(5 * time.Millisecond)
	since, ok := m.SinceOnline()
	assert.True(ok)
	assert.Equal(time.Duration(0), since)

	m.ReportFailure()
	since, ok = m.SinceOnline()
	assert.True(ok)
	assert.GreaterOrEqual(since, time.Duration(0))
}

func TestMonitorCheck(t *testing.T) {
	tests := map[string]struct {
		config   health.MonitorConfig
		expErr   bool
		expState health.State
	}{
		"a failing probe should move to offline": {
			config: health.MonitorConfig{
				Probe: func(ctx context.Context) error { return fmt.Errorf("connection refused") },
			},
			expErr:   true,
			expState: health.StateOffline,
		},

		"a fast probe should move to online": {
			config: health.MonitorConfig{
				Probe: func(ctx context.Context) error { return nil },
			},
			expState: health.StateOnline,
		},

		"a slow probe should move to degraded": {
			config: health.MonitorConfig{
				SlowThreshold: time.Millisecond,
				Probe: func(ctx context.Context) error {
					time.Sleep(20 * time.Millisecond)
					return nil
				},
			},
			expState: health.StateDegraded,
		},

		"a fast probe should recover a degraded connection": {
			config: health.MonitorConfig{
				Probe: func(ctx context.Context) error { return nil },
			},
			expState: health.StateOnline,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			m, err := health.NewMonitor(test.config)
			require.NoError(t, err)

			err = m.Check(context.Background())

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
			assert.Equal(test.expState, m.State())
		})
	}
}

func TestMonitorCheckWithoutProbe(t *testing.T) {
	assert := assert.New(t)

	m, err := health.NewMonitor(health.MonitorConfig{})
	require.NoError(t, err)

	err = m.Check(context.Background())

	assert.Error(err)
}

func TestMonitorInvalidConfig(t *testing.T) {
	assert := assert.New(t)

	_, err := health.NewMonitor(health.MonitorConfig{SlowThreshold: -time.Second})

	assert.Error(err)
}
