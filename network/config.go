package network

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"
)

// Config holds the simulation and rendering parameters of a network
type Config struct {
	// DensityDivisor is the viewport area (logical px²) per particle
	DensityDivisor float64

	// MinParticles and MaxParticles bound the realized particle count
	MinParticles int
	MaxParticles int

	// MaxDist is the distance below which two particles are connected
	MaxDist float64

	// BaseSize is the minimum particle radius; radii span [BaseSize, BaseSize*SizeSpread]
	BaseSize   float64
	SizeSpread float64

	// InitialSpeed bounds the initial velocity per axis to [-InitialSpeed, InitialSpeed]
	InitialSpeed float64

	// ColorA is the glow center and link color, ColorB the glow rim color
	ColorA color.NRGBA
	ColorB color.NRGBA

	// WrapMargin is how far past the viewport edge a particle travels before wrapping
	WrapMargin float64

	// Damping multiplies the velocity once per step
	Damping float64

	// Pointer attraction: pull = min(PullMax, PullRange/d*PullScale)
	PullRange float64
	PullScale float64
	PullMax   float64

	// MaxFrameDelta caps the elapsed time fed into a single step
	MaxFrameDelta time.Duration

	// ReferenceFrame is the duration that corresponds to dt == 1
	ReferenceFrame time.Duration

	// Glow gradient: alpha at the center, alpha at GlowScale*radius
	GlowScale      float64
	GlowInnerAlpha float64
	GlowOuterAlpha float64

	// Link opacity = (1-d/MaxDist)*LinkAlphaRange + LinkBaseAlpha
	LinkBaseAlpha  float64
	LinkAlphaRange float64
	LinkWidth      float64

	// Background overlay, painted diagonally from the top-left to the bottom-right corner
	BackgroundFrom color.NRGBA
	BackgroundTo   color.NRGBA

	// Backdrop is the opaque color the overlay is composed onto
	Backdrop color.NRGBA

	// PointerActiveAtStart marks the pointer active before any move event
	PointerActiveAtStart bool

	// UseGrid enables the spatial grid pair search
	UseGrid bool
}

// DefaultConfig returns the default network configuration
func DefaultConfig() Config {
	return Config{
		DensityDivisor:       40000,
		MinParticles:         12,
		MaxParticles:         140,
		MaxDist:              160,
		BaseSize:             1.2,
		SizeSpread:           2.6,
		InitialSpeed:         0.35,
		ColorA:               color.NRGBA{R: 0, G: 212, B: 255, A: 255},  // cyan
		ColorB:               color.NRGBA{R: 123, G: 92, B: 255, A: 255}, // violet
		WrapMargin:           50,
		Damping:              0.9997,
		PullRange:            140,
		PullScale:            0.0006,
		PullMax:              0.002,
		MaxFrameDelta:        40 * time.Millisecond,
		ReferenceFrame:       16666 * time.Microsecond,
		GlowScale:            6,
		GlowInnerAlpha:       0.95,
		GlowOuterAlpha:       0.02,
		LinkBaseAlpha:        0.02,
		LinkAlphaRange:       0.12,
		LinkWidth:            1,
		BackgroundFrom:       color.NRGBA{R: 5, G: 8, B: 20, A: alpha8(0.45)},
		BackgroundTo:         color.NRGBA{R: 8, G: 12, B: 28, A: alpha8(0.55)},
		Backdrop:             color.NRGBA{R: 11, G: 13, B: 22, A: 255},
		PointerActiveAtStart: true,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.DensityDivisor <= 0:
		return fmt.Errorf("density divisor must be positive, got %v", c.DensityDivisor)
	case c.MinParticles < 0:
		return fmt.Errorf("min particles must not be negative, got %d", c.MinParticles)
	case c.MaxParticles < c.MinParticles:
		return fmt.Errorf("max particles %d below min particles %d", c.MaxParticles, c.MinParticles)
	case c.MaxDist <= 0:
		return fmt.Errorf("max distance must be positive, got %v", c.MaxDist)
	case c.BaseSize <= 0 || c.SizeSpread < 1:
		return fmt.Errorf("invalid particle size range %v x %v", c.BaseSize, c.SizeSpread)
	case c.Damping <= 0 || c.Damping > 1:
		return fmt.Errorf("damping must be in (0, 1], got %v", c.Damping)
	case c.ReferenceFrame <= 0:
		return errors.New("reference frame must be positive")
	case c.MaxFrameDelta < 0:
		return errors.New("max frame delta must not be negative")
	}
	return nil
}

// TargetCount returns the unclamped particle count for a viewport
func (c Config) TargetCount(width, height float64) int {
	return int(math.Floor(width * height / c.DensityDivisor))
}

// ClampCount bounds n to [MinParticles, MaxParticles]
func (c Config) ClampCount(n int) int {
	return max(c.MinParticles, min(c.MaxParticles, n))
}

// FrameDelta converts elapsed wall time into frame-equivalent units
func (c Config) FrameDelta(elapsed time.Duration) float64 {
	elapsed = max(0, min(elapsed, c.MaxFrameDelta))
	return float64(elapsed) / float64(c.ReferenceFrame)
}

// LinkOpacity returns the stroke opacity of a connection of length d
func (c Config) LinkOpacity(d float64) float64 {
	return LinkAlpha(d, c.MaxDist)*c.LinkAlphaRange + c.LinkBaseAlpha
}

// LinkAlpha is 1 at zero distance and 0 at maxDist
func LinkAlpha(d, maxDist float64) float64 {
	return 1 - d/maxDist
}

// WithAlpha returns clr with its alpha replaced by a in [0, 1]
func WithAlpha(clr color.NRGBA, a float64) color.NRGBA {
	clr.A = alpha8(a)
	return clr
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(max(0, min(1, a)) * 255))
}
