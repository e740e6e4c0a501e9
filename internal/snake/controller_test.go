package snake

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// mathRand adapts math/rand for property tests.
type mathRand struct{ r *rand.Rand }

func (m mathRand) NextInRange(n int) int { return m.r.Intn(n) }

// newCornerAppleController returns a controller whose apples always land on
// the top-left cell when it is free.
func newCornerAppleController(t *testing.T) *Controller {
	t.Helper()
	return NewController(core.DefaultGrid(), &seqRand{vals: []int{0}}, 0)
}

func pixels(g core.Grid, cells []core.Cell) [][2]int {
	out := make([][2]int, len(cells))
	for i, c := range cells {
		x, y := g.ToPixel(c)
		out[i] = [2]int{x, y}
	}
	return out
}

func TestResetLayout(t *testing.T) {
	c := newCornerAppleController(t)
	s := c.Snapshot()

	require.Len(t, s.Body, 2)
	assert.Equal(t, [][2]int{{120, 120}, {140, 120}}, pixels(c.Grid(), s.Body), "tail then head")
	assert.Equal(t, core.DirRight, s.Dir)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.True(t, s.HasApple)
	assert.False(t, s.Occupies(s.Apple))
}

func TestThreeTicksStraight(t *testing.T) {
	c := newCornerAppleController(t)
	require.Equal(t, PhaseRunning, c.PressButton())

	for i := 0; i < 3; i++ {
		require.Equal(t, OutcomeMoved, c.Tick())
		s := c.Snapshot()
		require.Len(t, s.Body, 2)
		assert.Equal(t, s.Body[1].Add(-1, 0), s.Body[0], "tail trails one cell behind head")
	}

	s := c.Snapshot()
	x, y := c.Grid().ToPixel(s.Head())
	assert.Equal(t, 200, x)
	assert.Equal(t, 120, y)
	assert.Equal(t, uint64(3), s.Ticks)
}

func TestWallHitEndsGameAndResetRestores(t *testing.T) {
	c := newCornerAppleController(t)
	initial := c.Snapshot()

	c.body = BodyOf(core.Cell{Col: 13, Row: 6}, core.Cell{Col: 14, Row: 6}, core.Cell{Col: 15, Row: 6})
	c.score = 4
	c.phase = PhaseRunning
	before := c.Snapshot()

	assert.Equal(t, OutcomeHitWall, c.Tick())

	s := c.Snapshot()
	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.Equal(t, OutcomeHitWall, s.Reason)
	assert.Equal(t, 4, s.Score, "score unchanged")
	assert.Equal(t, before.Body, s.Body, "nothing committed on collision")
	assert.Equal(t, OutcomeNone, c.Tick(), "frozen after game over")

	assert.Equal(t, PhaseIdle, c.PressButton())
	after := c.Snapshot()
	assert.Equal(t, initial.Body, after.Body)
	assert.Equal(t, core.DirRight, after.Dir)
	assert.Equal(t, 0, after.Score)
	assert.Equal(t, initial.Generation+1, after.Generation)
}

func TestEatingAppleGrows(t *testing.T) {
	c := newCornerAppleController(t)
	c.apple = core.Cell{Col: 8, Row: 6}
	c.PressButton()

	assert.Equal(t, OutcomeGrew, c.Tick())

	s := c.Snapshot()
	require.Len(t, s.Body, 3)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, core.Cell{Col: 8, Row: 6}, s.Head())
	assert.Equal(t, core.Cell{Col: 6, Row: 6}, s.Body[0], "new tail at the vacated cell")
	assert.False(t, s.Occupies(s.Apple), "new apple off the body")
	assert.NoError(t, BodyOf(s.Body...).Check())
}

func TestSelfCollision(t *testing.T) {
	c := newCornerAppleController(t)
	c.body = BodyOf(
		core.Cell{Col: 6, Row: 4},
		core.Cell{Col: 6, Row: 5},
		core.Cell{Col: 6, Row: 6},
		core.Cell{Col: 5, Row: 6},
		core.Cell{Col: 5, Row: 5},
	)
	c.dir = core.DirRight
	c.phase = PhaseRunning

	assert.Equal(t, OutcomeHitSelf, c.Tick())
	assert.Equal(t, PhaseGameOver, c.Phase())
}

func TestChasingTailIsLegal(t *testing.T) {
	c := newCornerAppleController(t)
	c.body = BodyOf(
		core.Cell{Col: 5, Row: 5},
		core.Cell{Col: 6, Row: 5},
		core.Cell{Col: 6, Row: 6},
		core.Cell{Col: 5, Row: 6},
	)
	c.dir = core.DirUp
	c.phase = PhaseRunning

	assert.Equal(t, OutcomeMoved, c.Tick())
	assert.Equal(t, core.Cell{Col: 5, Row: 5}, c.Snapshot().Head())
}

func TestBoardFull(t *testing.T) {
	// 4x1 board: spawn at (1,0), apple first at (2,0), then the last free cell.
	c := NewController(core.NewGrid(4, 1, 1), &seqRand{vals: []int{2}}, 3)
	require.Equal(t, core.Cell{Col: 2, Row: 0}, c.Snapshot().Apple)
	c.PressButton()

	require.Equal(t, OutcomeGrew, c.Tick())
	require.Equal(t, core.Cell{Col: 3, Row: 0}, c.Snapshot().Apple)

	assert.Equal(t, OutcomeBoardFull, c.Tick())
	s := c.Snapshot()
	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.False(t, s.HasApple)
	assert.Equal(t, 2, s.Score)
	assert.Len(t, s.Body, 4)
}

func TestDirectionRule(t *testing.T) {
	c := newCornerAppleController(t)

	assert.True(t, c.SetDirection(core.DirUp), "accepted while idle")
	assert.True(t, c.SetDirection(core.DirRight))
	assert.False(t, c.SetDirection(core.DirLeft), "reverse of the spawn direction")
	assert.False(t, c.SetDirection(core.DirNone))
	c.PressButton()

	for _, d := range []core.Direction{core.DirUp, core.DirLeft, core.DirDown, core.DirRight} {
		cur := c.Direction()
		assert.False(t, c.SetDirection(cur.Opposite()), "reverse of %v", cur)
		assert.Equal(t, cur, c.Direction())
		assert.True(t, c.SetDirection(cur), "same as %v", cur)
		require.True(t, c.SetDirection(d), "turn to %v", d)
		require.Equal(t, OutcomeMoved, c.Tick())
		assert.Equal(t, d, c.Direction())
	}

	c.PressButton()
	require.Equal(t, PhasePaused, c.Phase())
	assert.True(t, c.SetDirection(core.DirUp), "accepted while paused")
	assert.Equal(t, OutcomeNone, c.Tick())
}

func TestTwoTurnsBetweenTicksCannotReverse(t *testing.T) {
	c := newCornerAppleController(t)
	c.body = BodyOf(core.Cell{Col: 5, Row: 6}, core.Cell{Col: 6, Row: 6}, core.Cell{Col: 7, Row: 6})
	c.phase = PhaseRunning

	require.True(t, c.SetDirection(core.DirUp))
	assert.False(t, c.SetDirection(core.DirLeft), "left reverses the last committed move")
	assert.Equal(t, core.DirUp, c.Direction())

	require.Equal(t, OutcomeMoved, c.Tick(), "no hit_self")
	assert.Equal(t, core.Cell{Col: 7, Row: 5}, c.Snapshot().Head())

	assert.True(t, c.SetDirection(core.DirLeft), "allowed once up is committed")
	require.Equal(t, OutcomeMoved, c.Tick())
	assert.Equal(t, core.Cell{Col: 6, Row: 5}, c.Snapshot().Head())
}

func TestResetRestoresHeading(t *testing.T) {
	c := newCornerAppleController(t)
	c.PressButton()
	require.True(t, c.SetDirection(core.DirUp))
	require.Equal(t, OutcomeMoved, c.Tick())

	c.Reset()
	assert.False(t, c.SetDirection(core.DirLeft), "heading is right again")
	assert.True(t, c.SetDirection(core.DirDown))
}

func TestToggleRunning(t *testing.T) {
	c := newCornerAppleController(t)

	assert.True(t, c.ToggleRunning())
	assert.False(t, c.ToggleRunning())
	assert.Equal(t, PhasePaused, c.Phase())
	assert.Equal(t, OutcomeNone, c.Tick(), "paused board does not move")
	assert.True(t, c.ToggleRunning())

	c.phase = PhaseGameOver
	assert.False(t, c.ToggleRunning())
	assert.Equal(t, PhaseGameOver, c.Phase())
}

func TestResetIsIdempotent(t *testing.T) {
	c := NewController(core.DefaultGrid(), mathRand{rand.New(rand.NewSource(7))}, 0)

	c.Reset()
	a := c.Snapshot()
	c.Reset()
	b := c.Snapshot()

	assert.Equal(t, a.Body, b.Body)
	assert.Equal(t, a.Dir, b.Dir)
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Phase, b.Phase)
	assert.False(t, a.Occupies(a.Apple))
	assert.False(t, b.Occupies(b.Apple))
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewController(core.DefaultGrid(), mathRand{rand.New(rand.NewSource(43))}, 0)
	c.PressButton()

	games := 0
	last := 0
	for i := 0; i < 5000; i++ {
		if rng.Intn(3) == 0 {
			c.SetDirection(core.JoystickOrder[rng.Intn(4)])
		}
		out := c.Tick()
		s := c.Snapshot()

		require.NoError(t, BodyOf(s.Body...).Check(), "tick %d", i)
		if s.HasApple {
			require.False(t, s.Occupies(s.Apple), "apple under body at tick %d", i)
		}

		if out.Ended() {
			require.GreaterOrEqual(t, s.Score, last)
			games++
			c.PressButton() // reset to idle
			c.PressButton() // start
			last = 0
			continue
		}
		require.GreaterOrEqual(t, s.Score, last, "score never decreases while running")
		if out == OutcomeGrew {
			require.Equal(t, last+1, s.Score)
		}
		last = s.Score
	}
	assert.Positive(t, games)
}

func TestConcurrentAccess(t *testing.T) {
	c := NewController(core.DefaultGrid(), mathRand{rand.New(rand.NewSource(1))}, 0)
	c.PressButton()

	const iterations = 2000
	var wg sync.WaitGroup
	errs := make(chan error, 4*iterations)

	wg.Add(4)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			if c.Tick().Ended() {
				c.PressButton()
				c.PressButton()
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			c.SetDirection(core.JoystickOrder[i%4])
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations/10; i++ {
			c.ToggleRunning()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			s := c.Snapshot()
			if err := BodyOf(s.Body...).Check(); err != nil {
				errs <- err
			}
		}
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("torn snapshot: %v", err)
	}
}

func TestDebugState(t *testing.T) {
	c := newCornerAppleController(t)
	state := c.Snapshot().DebugState()
	assert.Contains(t, state, "Phase: idle")
	assert.Contains(t, state, "Head: (7, 6)")
	assert.NotContains(t, state, "Ended")
}
