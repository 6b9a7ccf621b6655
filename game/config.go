package game

import "time"

// Config holds window and overlay settings
type Config struct {
	// ScreenWidth is the initial window width in logical pixels
	ScreenWidth int

	// ScreenHeight is the initial window height in logical pixels
	ScreenHeight int

	// Fullscreen starts the window fullscreen
	Fullscreen bool

	// Title is the window title
	Title string

	// ShowCTA draws the pulsing download button over the network
	ShowCTA bool

	// CTALabel is the button caption
	CTALabel string

	// TPS is the update rate; frames follow vsync independently
	TPS int

	// ProfileDir enables profile capture on frame rate drops when not empty
	ProfileDir string

	// ProfileDuration is the length of one capture
	ProfileDuration time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:     1280,
		ScreenHeight:    720,
		Title:           "Particle Network",
		CTALabel:        "Download",
		TPS:             60,
		ProfileDuration: 5 * time.Second,
	}
}
