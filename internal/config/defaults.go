package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/gridsnake/internal/device"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the configuration of the reference board: a 320x240
// display of 20 pixel cells stepping twelve times a second.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:    320,
			Height:   240,
			CellSize: 20,
		},
		Timing: TimingConfig{
			TickPeriod:    time.Second / 12,
			PollInterval:  2 * time.Millisecond,
			FrameInterval: 33 * time.Millisecond,
			KeyHold:       150 * time.Millisecond,
		},
		Apple: AppleConfig{
			MaxAttempts: 64,
		},
		GPIO: device.DefaultPinMap(),
		Font: FontConfig{
			Width:  16,
			Height: 24,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
