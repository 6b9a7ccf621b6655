package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"particlenet/game"
	"particlenet/network"
	"particlenet/raster"
	"particlenet/tui"
)

var (
	flagWidth      int
	flagHeight     int
	flagFullscreen bool
	flagSeed       int64
	flagGrid       bool
	flagCTA        bool
	flagProfileDir string
	flagLogLevel   string

	flagFPS int

	flagFrames int
	flagOut    string
	flagRatio  float64
)

var log = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "particlenet",
		Short: "Particle Network - an animated ambient background",
		Long: `Particle Network draws drifting glowing particles joined by fading links,
gently pulled toward the pointer while it is over the window.

Run without a subcommand to open a desktop window, use "tui" for the terminal
renderer or "snapshot" to write a PNG without a display.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runWindow,
	}

	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed for particle placement (0 picks one from the clock)")
	rootCmd.PersistentFlags().BoolVar(&flagGrid, "grid", false, "Find links with a uniform grid instead of testing every pair")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.Flags().IntVar(&flagWidth, "width", 1280, "Initial window width in logical pixels")
	rootCmd.Flags().IntVar(&flagHeight, "height", 720, "Initial window height in logical pixels")
	rootCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start fullscreen")
	rootCmd.Flags().BoolVar(&flagCTA, "cta", false, "Draw the pulsing download button")
	rootCmd.Flags().StringVar(&flagProfileDir, "profile-dir", "", "Capture CPU profiles and traces into this directory on frame rate drops")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Render the network in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&flagFPS, "fps", 30, "Frames per second")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Simulate a number of frames headlessly and write the last one as PNG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&flagWidth, "width", 1280, "Viewport width in logical pixels")
	snapshotCmd.Flags().IntVar(&flagHeight, "height", 720, "Viewport height in logical pixels")
	snapshotCmd.Flags().Float64Var(&flagRatio, "ratio", 1, "Device pixel ratio")
	snapshotCmd.Flags().IntVar(&flagFrames, "frames", 120, "Number of frames to simulate")
	snapshotCmd.Flags().StringVarP(&flagOut, "out", "o", "particlenet.png", "Output PNG path")

	rootCmd.AddCommand(tuiCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func newNetwork() (*network.Network, error) {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := network.DefaultConfig()
	cfg.UseGrid = flagGrid

	log.WithFields(logrus.Fields{"seed": seed, "grid": cfg.UseGrid}).Debug("creating network")
	return network.New(cfg, rand.New(rand.NewSource(seed)), log)
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func runWindow(cmd *cobra.Command, args []string) error {
	net, err := newNetwork()
	if err != nil {
		return err
	}

	config := game.DefaultConfig()
	config.ScreenWidth = flagWidth
	config.ScreenHeight = flagHeight
	config.Fullscreen = flagFullscreen
	config.ShowCTA = flagCTA
	config.ProfileDir = flagProfileDir

	g, err := game.NewGame(config, net, log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()
	go func() {
		<-ctx.Done()
		g.Stop()
	}()

	return game.Run(g)
}

func runTUI(cmd *cobra.Command, args []string) error {
	net, err := newNetwork()
	if err != nil {
		return err
	}

	// the terminal owns stdout while the program runs
	log.SetOutput(os.Stderr)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	canvas := tui.NewCanvas()
	sched := network.NewScheduler(net, canvas, time.Now())
	return tui.Run(ctx, sched, canvas, flagFPS)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if flagFrames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", flagFrames)
	}

	net, err := newNetwork()
	if err != nil {
		return err
	}

	start := time.Unix(0, 0)
	canvas := raster.New()
	sched := network.NewScheduler(net, canvas, start)
	sched.Configure(float64(flagWidth), float64(flagHeight), flagRatio)

	// simulated clock at the reference frame rate
	ticks := make(chan time.Time, flagFrames)
	step := net.Config().ReferenceFrame
	for i := 1; i <= flagFrames; i++ {
		ticks <- start.Add(time.Duration(i) * step)
	}
	close(ticks)

	ctx, cancel := signalContext(cmd)
	defer cancel()
	if err := sched.Run(ctx, ticks); err != nil {
		return err
	}

	f, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if err := canvas.WritePNG(f); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	w, h := net.Surface().BackingSize()
	log.WithFields(logrus.Fields{
		"path":      flagOut,
		"frames":    sched.Frames(),
		"particles": net.Particles().Len(),
		"size":      fmt.Sprintf("%dx%d", w, h),
	}).Info("snapshot written")
	return f.Close()
}
