// Package perf watches the frame rate and captures profiles when it drops.
package perf

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Monitor measures frames per second over fixed windows and reports drops
type Monitor struct {
	// Window is the measuring interval
	Window time.Duration

	// Threshold is the frame rate below which a drop is reported
	Threshold float64

	// Warmup ignores drops right after start
	Warmup time.Duration

	// Cooldown is the minimum time between two reported drops
	Cooldown time.Duration

	// OnDrop is called with a short reason tag for every reported drop
	OnDrop func(reason string) error

	fps         float64
	frames      int
	windowStart time.Time
	start       time.Time
	lastDrop    time.Time
	log         logrus.FieldLogger
}

// NewMonitor creates a monitor started at start
func NewMonitor(start time.Time, log logrus.FieldLogger) *Monitor {
	return &Monitor{
		Window:      500 * time.Millisecond,
		Threshold:   55,
		Warmup:      3 * time.Second,
		Cooldown:    10 * time.Second,
		start:       start,
		windowStart: start,
		log:         log,
	}
}

// FPS returns the rate measured over the last complete window
func (m *Monitor) FPS() float64 {
	return m.fps
}

// Observe records a frame at now and reports whether a drop was detected
func (m *Monitor) Observe(now time.Time, particles int) bool {
	m.frames++
	elapsed := now.Sub(m.windowStart)
	if elapsed < m.Window {
		return false
	}

	m.fps = float64(m.frames) / elapsed.Seconds()
	m.frames = 0
	m.windowStart = now

	if m.fps >= m.Threshold || now.Sub(m.start) < m.Warmup {
		return false
	}
	if !m.lastDrop.IsZero() && now.Sub(m.lastDrop) < m.Cooldown {
		return false
	}
	m.lastDrop = now

	reason := fmt.Sprintf("fps%.0f-particles%d", m.fps, particles)
	m.log.WithFields(logrus.Fields{"fps": m.fps, "particles": particles}).Warn("frame rate drop")
	if m.OnDrop != nil {
		if err := m.OnDrop(reason); err != nil {
			m.log.WithError(err).Warn("drop handler failed")
		}
	}
	return true
}
