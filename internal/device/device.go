// Package device defines the hardware collaborators the game engine talks to
// (display, digital inputs, score lamps and a random source) together with a
// register-level GPIO emulation that host backends drive.
package device

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Display is the pixel/text surface of the board.
type Display interface {
	ClearScreen()
	// DrawText writes text on the character grid, row and col in font cells.
	DrawText(row, col int, text string)
	// DrawFilledCell fills a pixel rectangle. Intensity 0 erases it.
	DrawFilledCell(x, y, w, h, intensity int)
}

// Input is a level-triggered digital input source.
type Input interface {
	IsButtonPressed() bool
	IsJoystickAsserted(d core.Direction) bool
}

// Indicator is an 8-lamp bank that mirrors the score.
type Indicator interface {
	SetIndicator(mask uint8)
}

// NopIndicator discards lamp updates.
type NopIndicator struct{}

func (NopIndicator) SetIndicator(uint8) {}

// Indicators fans one lamp update out to several banks.
type Indicators []Indicator

// SetIndicator forwards mask to every bank in order.
func (is Indicators) SetIndicator(mask uint8) {
	for _, i := range is {
		i.SetIndicator(mask)
	}
}

// MathRandom wraps math/rand behind a mutex so the engine tasks can share it.
// It satisfies core.Rand.
type MathRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ core.Rand = (*MathRandom)(nil)

// NewMathRandom creates a random source seeded once at start-up. A zero seed
// means time based.
func NewMathRandom(seed int64) *MathRandom {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MathRandom{rng: rand.New(rand.NewSource(seed))}
}

// NextInRange returns a value in [0, n). n <= 0 yields 0.
func (r *MathRandom) NextInRange(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
