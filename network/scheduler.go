package network

import (
	"context"
	"sync"
	"time"
)

// State of a scheduler
type State int

const (
	// StateScheduled means another frame will run
	StateScheduled State = iota
	// StateIdle means the scheduler was stopped
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Scheduler drives one step+render of a network per frame and owns its canvas
type Scheduler struct {
	net    *Network
	canvas Canvas

	last   time.Time
	frames uint64

	stop     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler whose first frame measures time from start
func NewScheduler(net *Network, canvas Canvas, start time.Time) *Scheduler {
	return &Scheduler{
		net:    net,
		canvas: canvas,
		last:   start,
		stop:   make(chan struct{}),
	}
}

// Network returns the driven network
func (s *Scheduler) Network() *Network {
	return s.net
}

// Configure reconfigures the network for a new viewport and resets the canvas
func (s *Scheduler) Configure(width, height, ratio float64) {
	s.net.Configure(width, height, ratio)
	s.canvas.Reset(s.net.Surface())
}

// Frame runs one frame at wall time now and returns the dt used
func (s *Scheduler) Frame(now time.Time) float64 {
	dt := s.net.Config().FrameDelta(now.Sub(s.last))
	s.last = now
	s.net.Render(s.canvas, dt)
	s.frames++
	return dt
}

// Frames returns the number of frames run
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Run executes a frame for every tick until Stop is called, ctx is done or
// ticks is closed. Only the context case returns an error.
func (s *Scheduler) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		// Stop wins over a pending tick
		select {
		case <-s.stop:
			return nil
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Frame(now)
		}
	}
}

// Stop ends Run; it is safe to call from any goroutine and more than once
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// State reports whether further frames will run
func (s *Scheduler) State() State {
	select {
	case <-s.stop:
		return StateIdle
	default:
		return StateScheduled
	}
}
