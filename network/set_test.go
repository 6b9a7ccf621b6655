package network

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetReinitializeClamps(t *testing.T) {
	s := NewSet(DefaultConfig(), rand.New(rand.NewSource(5)))
	surface := NewSurface(500, 500, 1)

	for _, tc := range []struct{ in, want int }{{-3, 12}, {0, 12}, {12, 12}, {77, 77}, {140, 140}, {10000, 140}} {
		s.Reinitialize(tc.in, surface)
		assert.Equal(t, tc.want, s.Len(), "count %d", tc.in)
	}
	assert.Equal(t, uint64(6), s.Generation())
}

func TestPointerEvents(t *testing.T) {
	var p Pointer
	p.Move(800, 600)
	assert.Equal(t, Pointer{X: 800, Y: 600, Active: true}, p)

	p.Leave()
	assert.Equal(t, Pointer{X: 800, Y: 600, Active: false}, p)
}
