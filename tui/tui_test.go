package tui

import (
	"image/color"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"particlenet/network"
)

func newTestModel(t *testing.T) (Model, *network.Scheduler, *Canvas) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	net, err := network.New(network.DefaultConfig(), rand.New(rand.NewSource(11)), log)
	require.NoError(t, err)
	canvas := NewCanvas()
	sched := network.NewScheduler(net, canvas, time.Unix(0, 0))
	return New(sched, canvas, 30), sched, canvas
}

func TestCanvasReset(t *testing.T) {
	c := NewCanvas()
	c.Reset(network.NewSurface(80*CellWidth+1, 24*CellHeight, 1))
	cols, rows := c.Size()
	assert.Equal(t, 81, cols)
	assert.Equal(t, 24, rows)
	assert.Equal(t, ' ', c.Glyph(0, 0))
	assert.Zero(t, c.Glyph(-1, 0))
}

func TestCanvasDrawing(t *testing.T) {
	c := NewCanvas()
	c.Reset(network.NewSurface(10*CellWidth, 4*CellHeight, 1))
	cyan := color.NRGBA{G: 212, B: 255, A: 255}

	c.StrokeLine(4, 8, 76, 8, 1, network.WithAlpha(cyan, 0.1))
	for col := 0; col < 10; col++ {
		assert.Equal(t, '─', c.Glyph(col, 0), "col %d", col)
	}
	assert.Equal(t, ' ', c.Glyph(0, 1))

	c.FillCircle(44, 8, 3, network.RadialGradient{CX: 44, CY: 8, R: 18, Inner: cyan, Outer: cyan})
	assert.Equal(t, '●', c.Glyph(5, 0))

	// links never overwrite particles
	c.StrokeLine(44, 0, 44, 60, 1, cyan)
	assert.Equal(t, '●', c.Glyph(5, 0))
	assert.Equal(t, '│', c.Glyph(5, 2))

	c.FillCircle(-100, -100, 3, network.RadialGradient{})
	c.Clear()
	assert.Equal(t, ' ', c.Glyph(5, 0))
}

func TestLineGlyph(t *testing.T) {
	assert.Equal(t, '─', lineGlyph(10, 1))
	assert.Equal(t, '│', lineGlyph(1, -10))
	assert.Equal(t, '╲', lineGlyph(5, 5))
	assert.Equal(t, '╲', lineGlyph(-5, -5))
	assert.Equal(t, '╱', lineGlyph(5, -5))
}

func TestOver(t *testing.T) {
	dst := rgb{0, 0, 0}
	assert.Equal(t, rgb{255, 0, 0}, over(dst, color.NRGBA{R: 255, A: 255}, 1))
	assert.Equal(t, rgb{0, 0, 0}, over(dst, color.NRGBA{R: 255, A: 0}, 1))
	assert.Equal(t, "#ff8000", hex(rgb{255, 128, 0}))
}

func TestModelLifecycle(t *testing.T) {
	m, sched, canvas := newTestModel(t)
	assert.Empty(t, m.View())
	assert.NotNil(t, m.Init())

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	assert.Nil(t, cmd)

	s := sched.Network().Surface()
	assert.Equal(t, 640.0, s.Width)
	assert.Equal(t, 384.0, s.Height)
	assert.Equal(t, 12, sched.Network().Particles().Len())
	cols, rows := canvas.Size()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)

	t.Run("mouse motion moves the pointer to the cell center", func(t *testing.T) {
		next, _ := m.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
		m = next.(Model)
		assert.Equal(t, network.Pointer{X: 84, Y: 88, Active: true}, *sched.Network().Pointer())
	})

	t.Run("blur is a leave", func(t *testing.T) {
		next, _ := m.Update(tea.BlurMsg{})
		m = next.(Model)
		assert.False(t, sched.Network().Pointer().Active)
	})

	t.Run("frames render and reschedule", func(t *testing.T) {
		next, cmd := m.Update(FrameMsg(time.Unix(0, int64(16*time.Millisecond))))
		m = next.(Model)
		assert.NotNil(t, cmd)
		assert.Equal(t, uint64(1), sched.Frames())

		view := m.View()
		assert.Equal(t, 24, strings.Count(view, "\n")+1)
		// particles sharing a cell collapse into one glyph
		drawn := strings.Count(view, "●") + strings.Count(view, "•")
		assert.NotZero(t, drawn)
		assert.LessOrEqual(t, drawn, 12)
	})

	t.Run("q stops the scheduler and quits", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, network.StateIdle, sched.State())

		_, cmd = m.Update(FrameMsg(time.Unix(1, 0)))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, uint64(1), sched.Frames())
	})
}
