package snake

import (
	"errors"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// ErrBoardFull is returned when the body covers every cell and no apple can
// be placed.
var ErrBoardFull = errors.New("snake: no free cell for apple")

// DefaultMaxAttempts bounds random sampling before the placer falls back to
// scanning the board.
const DefaultMaxAttempts = 64

// Placer chooses apple cells.
type Placer struct {
	grid        core.Grid
	rng         core.Rand
	maxAttempts int
}

// NewPlacer creates a placer sampling from rng. A non-positive maxAttempts
// uses DefaultMaxAttempts.
func NewPlacer(grid core.Grid, rng core.Rand, maxAttempts int) *Placer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Placer{grid: grid, rng: rng, maxAttempts: maxAttempts}
}

// Place returns a uniformly chosen cell not occupied by body.
//
// Random cells are sampled up to the attempt budget. Once the board is
// crowded enough to exhaust it, the free cells are enumerated and one is
// drawn from them, so the call always terminates.
func (p *Placer) Place(body Body) (core.Cell, error) {
	if c, ok := p.grid.RandomFreeCell(p.rng, body.Contains, p.maxAttempts); ok {
		return c, nil
	}

	free := p.grid.FreeCells(body.Contains)
	if len(free) == 0 {
		return core.Cell{}, ErrBoardFull
	}
	return free[p.rng.NextInRange(len(free))], nil
}
