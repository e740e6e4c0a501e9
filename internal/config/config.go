// Package config provides YAML-based configuration loading for the board,
// task timing and GPIO wiring.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/device"
)

// ErrInvalidBoard is returned when the board geometry cannot hold a game.
var ErrInvalidBoard = errors.New("config: invalid board")

// ErrInvalidTiming is returned for non-positive task periods.
var ErrInvalidTiming = errors.New("config: invalid timing")

// Config contains all configuration for a game session.
type Config struct {
	Board  BoardConfig   `yaml:"board"`
	Timing TimingConfig  `yaml:"timing"`
	Apple  AppleConfig   `yaml:"apple"`
	GPIO   device.PinMap `yaml:"gpio"`
	Font   FontConfig    `yaml:"font"`
	Seed   int64         `yaml:"seed"` // 0 = time based
}

// BoardConfig defines the display in pixels and the cell size.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// TimingConfig defines the task periods.
type TimingConfig struct {
	TickPeriod    time.Duration `yaml:"tick_period"`    // One snake step
	PollInterval  time.Duration `yaml:"poll_interval"`  // Input task yield
	FrameInterval time.Duration `yaml:"frame_interval"` // Renderer yield
	KeyHold       time.Duration `yaml:"key_hold"`       // Emulated pin hold after a key press
}

// AppleConfig bounds apple placement.
type AppleConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // Random samples before scanning for a free cell
}

// FontConfig is the character cell of the text grid.
type FontConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Grid returns the cell grid of the board.
func (c Config) Grid() core.Grid {
	return core.NewGrid(c.Board.Width, c.Board.Height, c.Board.CellSize)
}

// MinTextRows is how many text rows the status screens use; the score line
// sits on row 4.
const MinTextRows = 5

// TextRows returns the height of the text grid in characters.
func (c Config) TextRows() int {
	return c.Board.Height / c.Font.Height
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	b := c.Board
	if b.CellSize <= 0 || b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: width, height and cell_size must be positive", ErrInvalidBoard)
	}
	if b.Width%b.CellSize != 0 || b.Height%b.CellSize != 0 {
		return fmt.Errorf("%w: %dx%d is not a multiple of cell_size %d", ErrInvalidBoard, b.Width, b.Height, b.CellSize)
	}
	// The spawn layout needs a tail cell left of the centre.
	if g := c.Grid(); g.Width < 4 {
		return fmt.Errorf("%w: need at least 4 columns, got %d", ErrInvalidBoard, g.Width)
	}
	if c.Font.Width <= 0 || c.Font.Height <= 0 {
		return fmt.Errorf("%w: font size must be positive", ErrInvalidBoard)
	}
	if rows := c.TextRows(); rows < MinTextRows {
		return fmt.Errorf("%w: font leaves %d text rows, need %d", ErrInvalidBoard, rows, MinTextRows)
	}

	t := c.Timing
	if t.TickPeriod <= 0 || t.PollInterval <= 0 || t.FrameInterval <= 0 || t.KeyHold <= 0 {
		return fmt.Errorf("%w: periods must be positive", ErrInvalidTiming)
	}

	if c.Apple.MaxAttempts < 0 {
		return fmt.Errorf("config: apple.max_attempts must not be negative")
	}
	return c.GPIO.Validate()
}
