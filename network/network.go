// Package network simulates and draws an ambient particle network: glowing particles
// drifting on a torus around the viewport, linked by faint lines when close and
// gently attracted to the pointer.
package network

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Network is the simulation context: surface, pointer, particles and configuration.
// A Network is driven from a single goroutine.
type Network struct {
	cfg     Config
	surface Surface
	pointer Pointer
	set     *Set
	grid    *Grid
	target  int
	log     logrus.FieldLogger
}

// New creates a network. Call Configure before the first frame.
func New(cfg Config, rng *rand.Rand, log logrus.FieldLogger) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid network config: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	n := &Network{
		cfg:     cfg,
		set:     NewSet(cfg, rng),
		log:     log,
		pointer: Pointer{Active: cfg.PointerActiveAtStart},
	}
	if cfg.UseGrid {
		n.grid = NewGrid(cfg.MaxDist)
	}
	return n, nil
}

// Configure applies a viewport size and device pixel ratio, recomputes the particle
// count and recreates every particle. The pointer is recentered only before it has
// received any event.
func (n *Network) Configure(width, height, ratio float64) {
	first := n.set.Generation() == 0
	n.surface = NewSurface(width, height, ratio)
	n.target = n.cfg.TargetCount(n.surface.Width, n.surface.Height)
	n.set.Reinitialize(n.target, n.surface)
	if first {
		n.pointer.X, n.pointer.Y = n.surface.Center()
	}

	n.log.WithFields(logrus.Fields{
		"width":  n.surface.Width,
		"height": n.surface.Height,
		"ratio":  n.surface.Ratio,
		"target": n.target,
		"count":  n.set.Len(),
	}).Debug("viewport configured")
}

// Config returns the configuration
func (n *Network) Config() Config {
	return n.cfg
}

// Surface returns the current surface
func (n *Network) Surface() Surface {
	return n.surface
}

// Pointer returns the pointer tracker for input handlers
func (n *Network) Pointer() *Pointer {
	return &n.pointer
}

// Particles returns the current particle set
func (n *Network) Particles() *Set {
	return n.set
}

// TargetCount returns the unclamped count computed at the last Configure
func (n *Network) TargetCount() int {
	return n.target
}

// Render paints the background, advances every particle by dt and draws the links
// and particles onto c
func (n *Network) Render(c Canvas, dt float64) {
	w, h := n.surface.Width, n.surface.Height
	c.Clear()
	c.FillRect(0, 0, w, h, Solid(n.cfg.Backdrop))
	c.FillRect(0, 0, w, h, LinearGradient{
		X1: w, Y1: h,
		From: n.cfg.BackgroundFrom,
		To:   n.cfg.BackgroundTo,
	})

	if n.grid != nil {
		n.renderGrid(c, dt)
		return
	}
	n.renderInterleaved(c, dt)
}

// renderInterleaved steps particle i, then links it to every later particle
// (not yet stepped this frame), then draws it
func (n *Network) renderInterleaved(c Canvas, dt float64) {
	ps := n.set.Particles()
	for i := range ps {
		p := &ps[i]
		p.Step(dt, n.pointer, n.surface, n.cfg)
		for j := i + 1; j < len(ps); j++ {
			if d := distance(*p, ps[j]); d < n.cfg.MaxDist {
				n.drawLink(c, *p, ps[j], d)
			}
		}
		p.Draw(c, n.cfg)
	}
}

// renderGrid steps everything first, then links through the grid, then draws
func (n *Network) renderGrid(c Canvas, dt float64) {
	ps := n.set.Particles()
	for i := range ps {
		ps[i].Step(dt, n.pointer, n.surface, n.cfg)
	}
	n.grid.Rebuild(ps, n.surface, n.cfg.WrapMargin)
	n.grid.ForEachPair(ps, n.cfg.MaxDist, func(i, j int, d float64) {
		n.drawLink(c, ps[i], ps[j], d)
	})
	for i := range ps {
		ps[i].Draw(c, n.cfg)
	}
}

func (n *Network) drawLink(c Canvas, p, q Particle, d float64) {
	c.StrokeLine(p.X, p.Y, q.X, q.Y, n.cfg.LinkWidth, WithAlpha(n.cfg.ColorA, n.cfg.LinkOpacity(d)))
}
