package perf

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// feed observes frames at a fixed rate for d and returns the number of drops
func feed(m *Monitor, now *time.Time, fps int, d time.Duration) int {
	drops := 0
	step := time.Second / time.Duration(fps)
	for end := now.Add(d); now.Before(end); {
		*now = now.Add(step)
		if m.Observe(*now, 36) {
			drops++
		}
	}
	return drops
}

func TestMonitorMeasuresFPS(t *testing.T) {
	now := time.Unix(0, 0)
	m := NewMonitor(now, quietLogger())

	assert.Zero(t, feed(m, &now, 60, 2*time.Second))
	assert.InDelta(t, 60, m.FPS(), 1)
}

func TestMonitorReportsDrops(t *testing.T) {
	now := time.Unix(0, 0)
	m := NewMonitor(now, quietLogger())
	var reasons []string
	m.OnDrop = func(reason string) error {
		reasons = append(reasons, reason)
		return nil
	}

	t.Run("ignored during warmup", func(t *testing.T) {
		assert.Zero(t, feed(m, &now, 20, 2*time.Second))
	})

	t.Run("reported once per cooldown", func(t *testing.T) {
		assert.Equal(t, 1, feed(m, &now, 20, 5*time.Second))
		require.Len(t, reasons, 1)
		assert.Equal(t, "fps20-particles36", reasons[0])
	})

	t.Run("reported again after cooldown", func(t *testing.T) {
		assert.Equal(t, 1, feed(m, &now, 20, 10*time.Second))
	})
}

func TestProfilerCapture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	p, err := NewProfiler(dir, 20*time.Millisecond, quietLogger())
	require.NoError(t, err)

	require.NoError(t, p.Capture("test"))
	assert.Error(t, p.Capture("again"), "second capture while busy or cooling down")
	p.Wait()
	assert.False(t, p.IsProfiling())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, filepath.Ext(e.Name()))
	}
	assert.ElementsMatch(t, []string{".prof", ".trace"}, names)

	assert.ErrorContains(t, p.Capture("cooling"), "cooldown")
}
