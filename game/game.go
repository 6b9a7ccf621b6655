// Package game runs the particle network in a desktop window with ebiten.
package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"particlenet/network"
	"particlenet/perf"
)

// Game adapts a scheduler to the ebiten game loop
type Game struct {
	config   Config
	sched    *network.Scheduler
	renderer *Renderer
	input    *Input
	cta      *CTA
	monitor  *perf.Monitor
	profiler *perf.Profiler
	log      logrus.FieldLogger

	// Game start time for the button pulse
	startTime time.Time

	// last outside size and device scale seen by LayoutF
	outsideW, outsideH, scale float64
}

// NewGame creates a game drawing net. The returned scheduler is the one driving it.
func NewGame(config Config, net *network.Network, log logrus.FieldLogger) (*Game, error) {
	now := time.Now()
	renderer := NewRenderer()

	g := &Game{
		config:    config,
		sched:     network.NewScheduler(net, renderer, now),
		renderer:  renderer,
		input:     NewInput(),
		monitor:   perf.NewMonitor(now, log),
		log:       log,
		startTime: now,
	}
	if config.ShowCTA {
		g.cta = NewCTA(config.CTALabel, net.Config())
	}

	if config.ProfileDir != "" {
		p, err := perf.NewProfiler(config.ProfileDir, config.ProfileDuration, log)
		if err != nil {
			return nil, err
		}
		g.profiler = p
		g.monitor.OnDrop = p.Capture
	}

	return g, nil
}

// Scheduler returns the frame scheduler
func (g *Game) Scheduler() *network.Scheduler {
	return g.sched
}

// Stop ends the game after the current tick; it is safe from any goroutine
func (g *Game) Stop() {
	g.sched.Stop()
}

// Update handles input
func (g *Game) Update() error {
	if g.sched.State() == network.StateIdle {
		return ebiten.Termination
	}

	if g.input.QuitRequested() {
		g.log.Info("quit requested")
		g.sched.Stop()
		return ebiten.Termination
	}
	if g.input.ToggleFullscreenRequested() {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	g.input.Update(g.sched.Network())
	return nil
}

// Draw renders one frame of the network
func (g *Game) Draw(screen *ebiten.Image) {
	if g.sched.State() == network.StateIdle {
		return
	}

	now := time.Now()
	g.renderer.Begin(screen)
	g.sched.Frame(now)

	if g.cta != nil {
		g.cta.Draw(screen, g.renderer, g.sched.Network().Surface(), now.Sub(g.startTime))
	}

	g.monitor.Observe(now, g.sched.Network().Particles().Len())
}

// Layout is required by ebiten.Game; LayoutF takes precedence
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// LayoutF reconfigures the network whenever the window size or device scale changes
// and returns the backing store size in physical pixels
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH || scale != g.scale {
		g.outsideW, g.outsideH, g.scale = outsideWidth, outsideHeight, scale
		g.sched.Configure(outsideWidth, outsideHeight, scale)
	}

	w, h := g.sched.Network().Surface().BackingSize()
	// ebiten rejects an empty screen
	return float64(max(1, w)), float64(max(1, h))
}

// Run opens the window and blocks until it is closed or the game is stopped
func Run(g *Game) error {
	ebiten.SetWindowSize(g.config.ScreenWidth, g.config.ScreenHeight)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(g.config.Fullscreen)
	ebiten.SetTPS(g.config.TPS)

	err := ebiten.RunGame(g)
	if g.profiler != nil {
		g.profiler.Wait()
	}
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	g.log.WithField("frames", g.sched.Frames()).Info("window closed")
	return nil
}
