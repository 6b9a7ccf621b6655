package network

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedLine struct {
	x0, y0, x1, y1, width float64
	clr                   color.NRGBA
}

// recorder is a Canvas that keeps every call
type recorder struct {
	resets  []Surface
	clears  int
	rects   []LinearGradient
	lines   []recordedLine
	circles []RadialGradient
	order   []string

	onClear func()
}

func (r *recorder) Reset(s Surface) {
	r.resets = append(r.resets, s)
	r.order = append(r.order, "reset")
}

func (r *recorder) Clear() {
	r.clears++
	r.order = append(r.order, "clear")
	if r.onClear != nil {
		r.onClear()
	}
}

func (r *recorder) FillRect(x, y, w, h float64, g LinearGradient) {
	r.rects = append(r.rects, g)
	r.order = append(r.order, "rect")
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	r.lines = append(r.lines, recordedLine{x0, y0, x1, y1, width, clr})
	r.order = append(r.order, "line")
}

func (r *recorder) FillCircle(cx, cy, rad float64, g RadialGradient) {
	r.circles = append(r.circles, g)
	r.order = append(r.order, "circle")
}

func newTestScheduler(t *testing.T, start time.Time) (*Scheduler, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewScheduler(newTestNetwork(t, nil), rec, start)
	s.Configure(1600, 900, 2)
	return s, rec
}

func TestSchedulerConfigureResetsCanvas(t *testing.T) {
	s, rec := newTestScheduler(t, time.Now())
	require.Len(t, rec.resets, 1)
	assert.Equal(t, Surface{Width: 1600, Height: 900, Ratio: 2}, rec.resets[0])

	s.Configure(800, 600, 1)
	require.Len(t, rec.resets, 2)
	assert.Equal(t, s.Network().Surface(), rec.resets[1])
}

func TestSchedulerFrame(t *testing.T) {
	start := time.Unix(1000, 0)
	s, rec := newTestScheduler(t, start)

	dt := s.Frame(start.Add(16666 * time.Microsecond))
	assert.InDelta(t, 1.0, dt, 1e-9)
	assert.Equal(t, uint64(1), s.Frames())

	assert.Equal(t, 1, rec.clears)
	require.Len(t, rec.rects, 2)
	assert.Equal(t, Solid(DefaultConfig().Backdrop), rec.rects[0])
	assert.Equal(t, LinearGradient{
		X1: 1600, Y1: 900,
		From: DefaultConfig().BackgroundFrom,
		To:   DefaultConfig().BackgroundTo,
	}, rec.rects[1])
	assert.Len(t, rec.circles, 36)
	assert.Equal(t, []string{"reset", "clear", "rect", "rect"}, rec.order[:4])

	t.Run("long pause is clamped", func(t *testing.T) {
		dt := s.Frame(start.Add(time.Hour))
		assert.InDelta(t, 40/16.666, dt, 1e-9)
	})

	t.Run("clock going backwards steps nothing", func(t *testing.T) {
		dt := s.Frame(start)
		assert.Zero(t, dt)
	})
}

func TestSchedulerRun(t *testing.T) {
	t.Run("runs until ticks close", func(t *testing.T) {
		start := time.Unix(0, 0)
		s, rec := newTestScheduler(t, start)

		ticks := make(chan time.Time, 5)
		for i := 1; i <= 5; i++ {
			ticks <- start.Add(time.Duration(i) * 16 * time.Millisecond)
		}
		close(ticks)

		require.NoError(t, s.Run(context.Background(), ticks))
		assert.Equal(t, uint64(5), s.Frames())
		assert.Equal(t, 5, rec.clears)
		assert.Equal(t, StateScheduled, s.State())
	})

	t.Run("stop ends the loop after the current frame", func(t *testing.T) {
		start := time.Unix(0, 0)
		s, rec := newTestScheduler(t, start)
		rec.onClear = func() {
			if rec.clears == 3 {
				s.Stop()
			}
		}

		ticks := make(chan time.Time, 10)
		for i := 1; i <= 10; i++ {
			ticks <- start.Add(time.Duration(i) * 16 * time.Millisecond)
		}

		require.NoError(t, s.Run(context.Background(), ticks))
		assert.Equal(t, uint64(3), s.Frames())
		assert.Equal(t, StateIdle, s.State())
		assert.Equal(t, "idle", s.State().String())
	})

	t.Run("stop before run", func(t *testing.T) {
		s, _ := newTestScheduler(t, time.Now())
		s.Stop()
		s.Stop()

		ticks := make(chan time.Time, 1)
		ticks <- time.Now()
		require.NoError(t, s.Run(context.Background(), ticks))
		assert.Zero(t, s.Frames())
	})

	t.Run("context cancellation", func(t *testing.T) {
		s, _ := newTestScheduler(t, time.Now())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Run(ctx, make(chan time.Time))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParticlesDrawnAfterTheirLinks(t *testing.T) {
	s, rec := newTestScheduler(t, time.Unix(0, 0))
	s.Network().Pointer().Leave()
	ps := s.Network().Particles().Particles()
	for i := range ps {
		ps[i] = Particle{X: float64(i%9) * 200, Y: 300 + float64(i/9)*200, Radius: 2}
	}
	ps[0] = Particle{X: 10, Y: 10, Radius: 2}
	ps[1] = Particle{X: 20, Y: 10, Radius: 2}

	s.Frame(time.Unix(0, 0))

	// background, then particle 0's link, then particle 0
	assert.Equal(t, []string{"clear", "rect", "rect", "line", "circle", "circle"}, rec.order[1:7])
}
