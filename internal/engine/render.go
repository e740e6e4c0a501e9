package engine

import (
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/device"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// Screen text, positions in font cells.
const (
	titleText     = "SNAKE"
	startText     = "Push button to start"
	gameOverText  = "GAME OVER"
	restartText   = "Push to restart"
	pausedText    = "PAUSED"
	scoreTextRow  = 4
	scoreTextCol  = 5
	pausedTextRow = 0
	pausedTextCol = 7
)

// Renderer draws snapshots incrementally. It remembers which cells it lit
// so a frame only touches cells that changed, and cells the snake left are
// erased even when frames were skipped.
type Renderer struct {
	grid      core.Grid
	display   device.Display
	indicator device.Indicator

	drawn     map[core.Cell]int // Lit cells and their intensity
	gen       uint64
	phase     snake.Phase
	score     int
	primed    bool
	lampPrime bool
}

// NewRenderer creates a renderer that draws grid onto display and mirrors
// the score on indicator.
func NewRenderer(grid core.Grid, display device.Display, indicator device.Indicator) *Renderer {
	return &Renderer{
		grid:      grid,
		display:   display,
		indicator: indicator,
		drawn:     make(map[core.Cell]int),
	}
}

// Frame brings the display up to date with s. Only the render task calls it.
func (r *Renderer) Frame(s snake.Snapshot) {
	if !r.primed || s.Generation != r.gen || s.Phase != r.phase {
		r.enter(s)
	}
	if s.Phase != snake.PhaseGameOver {
		r.drawBoard(s)
	}
	r.updateLamps(s)
}

// enter redraws the static part of a phase from a cleared screen.
func (r *Renderer) enter(s snake.Snapshot) {
	r.display.ClearScreen()
	clear(r.drawn)
	r.primed = true
	r.gen = s.Generation
	r.phase = s.Phase

	switch s.Phase {
	case snake.PhaseIdle:
		r.display.DrawText(1, 7, titleText)
		r.display.DrawText(3, 0, startText)
	case snake.PhasePaused:
		r.display.DrawText(pausedTextRow, pausedTextCol, pausedText)
	case snake.PhaseGameOver:
		r.display.DrawText(1, 5, gameOverText)
		r.display.DrawText(3, 2, restartText)
		r.display.DrawText(scoreTextRow, scoreTextCol, ScoreText(s.Score))
	}
}

// drawBoard erases cells no longer occupied and draws new ones.
func (r *Renderer) drawBoard(s snake.Snapshot) {
	want := make(map[core.Cell]int, len(s.Body)+1)
	if s.HasApple {
		want[s.Apple] = core.IntensityApple
	}
	for _, c := range s.Body {
		want[c] = core.IntensityBody
	}

	for c := range r.drawn {
		if _, ok := want[c]; !ok {
			r.fill(c, core.IntensityErase)
			delete(r.drawn, c)
		}
	}
	for c, intensity := range want {
		if r.drawn[c] != intensity {
			r.fill(c, intensity)
			r.drawn[c] = intensity
		}
	}
}

func (r *Renderer) fill(c core.Cell, intensity int) {
	b := r.grid.Bounds(c)
	r.display.DrawFilledCell(b.X, b.Y, b.W, b.H, intensity)
}

func (r *Renderer) updateLamps(s snake.Snapshot) {
	if r.lampPrime && s.Score == r.score {
		return
	}
	r.lampPrime = true
	r.score = s.Score
	r.indicator.SetIndicator(uint8(s.Score))
}

// ScoreText formats the game-over score line.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}
