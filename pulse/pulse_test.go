package pulse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressAlternates(t *testing.T) {
	p := Default()

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{-time.Second, 0},
		{0, 0},
		{400 * time.Millisecond, 0.25},
		{800 * time.Millisecond, 0.5},
		{1600 * time.Millisecond, 1},
		{2000 * time.Millisecond, 0.75},
		{3200 * time.Millisecond, 0},
		{3600 * time.Millisecond, 0.25},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, p.Progress(tt.elapsed), 1e-9, "elapsed %v", tt.elapsed)
	}
}

func TestAtEndpoints(t *testing.T) {
	p := Default()
	assert.Equal(t, p.From, p.At(0))
	assert.Equal(t, p.To, p.At(p.Period))
	assert.Equal(t, p.From, p.At(2*p.Period))

	mid := p.At(p.Period / 2)
	assert.InDelta(t, 16.0, mid.OffsetY, 1e-9)
	assert.InDelta(t, 55.0, mid.Blur, 1e-9)
}

func TestZeroPeriodStaysAtRest(t *testing.T) {
	p := Default()
	p.Period = 0
	assert.Equal(t, p.From, p.At(time.Hour))
}

func TestLayers(t *testing.T) {
	s := Shadow{OffsetY: 10, Blur: 40, Color: Default().To.Color}
	layers := s.Layers(100, 100, 200, 50, 4)
	require.Len(t, layers, 4)

	// largest first, innermost matches the box shifted by the offset
	assert.Equal(t, 100-20.0, layers[0].X)
	assert.Equal(t, 200+40.0, layers[0].W)
	last := layers[3]
	assert.InDelta(t, 100-5.0, last.X, 1e-9)
	assert.InDelta(t, 110-5.0, last.Y, 1e-9)
	for i := 1; i < len(layers); i++ {
		assert.Less(t, layers[i].W, layers[i-1].W)
	}

	assert.Nil(t, s.Layers(0, 0, 1, 1, 0))
}
