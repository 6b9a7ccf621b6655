package network

import (
	"math"
	"math/rand"
)

// Particle is one drifting node of the network
type Particle struct {
	X, Y   float64 // logical position
	VX, VY float64 // velocity per frame-equivalent
	Radius float64
	Phase  float64 // reserved for visual variation, not used in motion
}

// newParticle places a particle uniformly inside the surface
func newParticle(rng *rand.Rand, s Surface, cfg Config) Particle {
	return Particle{
		X:      randRange(rng, 0, s.Width),
		Y:      randRange(rng, 0, s.Height),
		VX:     randRange(rng, -cfg.InitialSpeed, cfg.InitialSpeed),
		VY:     randRange(rng, -cfg.InitialSpeed, cfg.InitialSpeed),
		Radius: randRange(rng, cfg.BaseSize, cfg.BaseSize*cfg.SizeSpread),
		Phase:  rng.Float64() * 2 * math.Pi,
	}
}

// Pull returns the attraction coefficient toward a pointer at distance d
func (c Config) Pull(d float64) float64 {
	return math.Min(c.PullMax, c.PullRange/d*c.PullScale)
}

// Step advances the particle by dt frame-equivalents
func (p *Particle) Step(dt float64, ptr Pointer, s Surface, cfg Config) {
	if ptr.Active {
		dx := ptr.X - p.X
		dy := ptr.Y - p.Y
		pull := cfg.Pull(math.Sqrt(dx*dx+dy*dy) + 0.001)
		p.VX += dx * pull
		p.VY += dy * pull
	}

	p.X += p.VX * dt
	p.Y += p.VY * dt

	// Torus wrap, each axis independently
	m := cfg.WrapMargin
	if p.X < -m {
		p.X = s.Width + m
	} else if p.X > s.Width+m {
		p.X = -m
	}
	if p.Y < -m {
		p.Y = s.Height + m
	} else if p.Y > s.Height+m {
		p.Y = -m
	}

	p.VX *= cfg.Damping
	p.VY *= cfg.Damping
}

// Glow returns the soft gradient the particle is filled with
func (p Particle) Glow(cfg Config) RadialGradient {
	return RadialGradient{
		CX:    p.X,
		CY:    p.Y,
		R:     p.Radius * cfg.GlowScale,
		Inner: WithAlpha(cfg.ColorA, cfg.GlowInnerAlpha),
		Outer: WithAlpha(cfg.ColorB, cfg.GlowOuterAlpha),
	}
}

// Draw renders the particle onto c
func (p Particle) Draw(c Canvas, cfg Config) {
	c.FillCircle(p.X, p.Y, p.Radius, p.Glow(cfg))
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return rng.Float64()*(hi-lo) + lo
}
