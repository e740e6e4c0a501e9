// Package snake implements the concurrent game-state engine: the snake body,
// apple placement and the mutex-guarded controller every task goes through.
package snake

import (
	"sync"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Phase is the controller's game phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome reports what a single Tick did.
type Outcome int

const (
	OutcomeNone      Outcome = iota // Not running, nothing moved
	OutcomeMoved                    // Advanced one cell
	OutcomeGrew                     // Advanced onto the apple and grew
	OutcomeHitWall                  // Next step left the board
	OutcomeHitSelf                  // Head ran into the body
	OutcomeBoardFull                // Grew, but no cell is left for an apple
)

// Ended reports whether the outcome finished the game.
func (o Outcome) Ended() bool {
	return o == OutcomeHitWall || o == OutcomeHitSelf || o == OutcomeBoardFull
}

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeMoved:
		return "moved"
	case OutcomeGrew:
		return "grew"
	case OutcomeHitWall:
		return "hit_wall"
	case OutcomeHitSelf:
		return "hit_self"
	case OutcomeBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Controller owns the game state. Every method is one critical section
// under a single mutex, so no caller ever observes a partially updated body.
type Controller struct {
	mu     sync.Mutex
	grid   core.Grid
	placer *Placer

	body       Body
	apple      core.Cell
	hasApple   bool
	dir        core.Direction
	heading    core.Direction // Direction of the last committed move
	score      int
	phase      Phase
	ticks      uint64
	generation uint64
	reason     Outcome
}

// NewController creates a controller for grid and resets it to the Idle
// layout. rng drives apple placement.
func NewController(grid core.Grid, rng core.Rand, maxAttempts int) *Controller {
	c := &Controller{
		grid:   grid,
		placer: NewPlacer(grid, rng, maxAttempts),
	}
	c.Reset()
	return c
}

// Grid returns the board the controller plays on.
func (c *Controller) Grid() core.Grid {
	return c.grid
}

// Reset recentres a two-cell snake facing right, zeroes the score, places a
// fresh apple and returns to Idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.body = NewBody(c.grid.SpawnCell())
	c.dir = core.DirRight
	c.heading = core.DirRight
	c.score = 0
	c.ticks = 0
	c.phase = PhaseIdle
	c.reason = OutcomeNone
	c.generation++
	c.placeAppleLocked()
}

// placeAppleLocked re-seeds the apple. It reports false when the board is full.
func (c *Controller) placeAppleLocked() bool {
	apple, err := c.placer.Place(c.body)
	if err != nil {
		c.hasApple = false
		return false
	}
	c.apple = apple
	c.hasApple = true
	return true
}

// SetDirection requests a new direction for the next move. d is rejected
// when it reverses either the pending direction or the last committed move,
// so two changes between ticks cannot turn the head back into the neck.
// Rejected requests are dropped without error.
func (c *Controller) SetDirection(d core.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !d.IsCardinal() || d == c.dir.Opposite() || d == c.heading.Opposite() {
		return false
	}
	c.dir = d
	return true
}

// ToggleRunning flips the running flag: Idle and Paused start running,
// Running pauses. It does nothing after game over and returns whether the
// game is running afterwards.
func (c *Controller) ToggleRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toggleLocked()
	return c.phase == PhaseRunning
}

func (c *Controller) toggleLocked() {
	switch c.phase {
	case PhaseIdle, PhasePaused:
		c.phase = PhaseRunning
	case PhaseRunning:
		c.phase = PhasePaused
	}
}

// PressButton applies one debounced button press: after game over it resets
// to Idle, otherwise it toggles the running flag. It returns the new phase.
func (c *Controller) PressButton() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseGameOver {
		c.resetLocked()
	} else {
		c.toggleLocked()
	}
	return c.phase
}

// Running reports whether ticks and joystick input are currently processed.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == PhaseRunning
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Direction returns the direction the next tick will move in.
func (c *Controller) Direction() core.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

// Score returns the current score.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

// Tick advances the simulation by one step. It is the only place where the
// body, apple and score change together. Collisions are detected before
// anything is committed, so a game that ends keeps its last valid layout.
func (c *Controller) Tick() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickLocked()
}

// TickSnapshot runs Tick and takes a Snapshot in the same critical section,
// so the snapshot shows exactly the state the tick produced.
func (c *Controller) TickSnapshot() (Outcome, Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.tickLocked()
	return out, c.snapshotLocked()
}

func (c *Controller) tickLocked() Outcome {
	if c.phase != PhaseRunning {
		return OutcomeNone
	}

	if c.body.HitsWall(c.grid, c.dir) {
		return c.endLocked(OutcomeHitWall)
	}

	next, dropped := c.body.Advance(c.dir)
	if next.ContainsHeadCollision() {
		return c.endLocked(OutcomeHitSelf)
	}

	c.ticks++
	c.heading = c.dir
	if !c.hasApple || next.Head() != c.apple {
		c.body = next
		return OutcomeMoved
	}

	next.Grow(dropped)
	c.body = next
	c.score++
	if !c.placeAppleLocked() {
		return c.endLocked(OutcomeBoardFull)
	}
	return OutcomeGrew
}

func (c *Controller) endLocked(reason Outcome) Outcome {
	c.phase = PhaseGameOver
	c.reason = reason
	return reason
}

// Snapshot returns a deep copy of the state, taken atomically.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Body:       c.body.Cells(),
		Apple:      c.apple,
		HasApple:   c.hasApple,
		Score:      c.score,
		Dir:        c.dir,
		Phase:      c.phase,
		Ticks:      c.ticks,
		Generation: c.generation,
		Reason:     c.reason,
	}
}
