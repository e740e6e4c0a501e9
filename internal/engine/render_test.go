package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/device"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

func newRenderFixture(t *testing.T) (*snake.Controller, *Renderer, *device.FakeDisplay, *device.FakeIndicator) {
	t.Helper()
	ctrl := snake.NewController(core.DefaultGrid(), device.NewSeqRandom(0), 0)
	display := device.NewFakeDisplay()
	lamps := &device.FakeIndicator{}
	return ctrl, NewRenderer(ctrl.Grid(), display, lamps), display, lamps
}

func TestRendererTitleScreen(t *testing.T) {
	ctrl, r, display, _ := newRenderFixture(t)

	r.Frame(ctrl.Snapshot())

	assert.Equal(t, 1, display.Clears())
	assert.Equal(t, "SNAKE", display.Text(1, 7))
	assert.Equal(t, "Push button to start", display.Text(3, 0))
	assert.Equal(t, core.IntensityBody, display.Intensity(120, 120))
	assert.Equal(t, core.IntensityBody, display.Intensity(140, 120))
	assert.Equal(t, core.IntensityApple, display.Intensity(0, 0), "apple at the corner")
	assert.Equal(t, 3, display.Lit())
}

func TestRendererOnlyDrawsChanges(t *testing.T) {
	ctrl, r, display, _ := newRenderFixture(t)
	ctrl.PressButton()

	r.Frame(ctrl.Snapshot())
	clears := display.Clears()
	draws := display.Draws()
	assert.Empty(t, display.Text(1, 7), "title cleared when play starts")

	r.Frame(ctrl.Snapshot())
	assert.Equal(t, draws, display.Draws(), "unchanged frame draws nothing")

	ctrl.Tick()
	r.Frame(ctrl.Snapshot())

	assert.Equal(t, clears, display.Clears())
	assert.Equal(t, draws+2, display.Draws(), "one erase and one new head")
	assert.Equal(t, 0, display.Intensity(120, 120), "vacated tail erased")
	assert.Equal(t, core.IntensityBody, display.Intensity(160, 120))
}

func TestRendererCatchesUpAfterSkippedFrames(t *testing.T) {
	ctrl, r, display, _ := newRenderFixture(t)
	ctrl.PressButton()
	r.Frame(ctrl.Snapshot())

	for i := 0; i < 3; i++ {
		require.Equal(t, snake.OutcomeMoved, ctrl.Tick())
	}
	r.Frame(ctrl.Snapshot())

	assert.Equal(t, 3, display.Lit(), "two body cells and the apple")
	assert.Equal(t, core.IntensityBody, display.Intensity(180, 120))
	assert.Equal(t, core.IntensityBody, display.Intensity(200, 120))
	for _, x := range []int{120, 140, 160} {
		assert.Equal(t, 0, display.Intensity(x, 120), "stale cell at x=%d", x)
	}
}

func TestRendererGameOverScreen(t *testing.T) {
	ctrl, r, display, _ := newRenderFixture(t)
	ctrl.PressButton()
	r.Frame(ctrl.Snapshot())

	for ctrl.Tick() != snake.OutcomeHitWall {
	}
	r.Frame(ctrl.Snapshot())

	assert.Equal(t, "GAME OVER", display.Text(1, 5))
	assert.Equal(t, "Push to restart", display.Text(3, 2))
	assert.Equal(t, "Score: 0", display.Text(4, 5))
	assert.Equal(t, 0, display.Lit(), "board hidden behind the game-over text")

	ctrl.PressButton()
	r.Frame(ctrl.Snapshot())
	assert.Equal(t, "SNAKE", display.Text(1, 7), "title after restart")
	assert.Empty(t, display.Text(1, 5))
}

func TestRendererPauseText(t *testing.T) {
	ctrl, r, display, _ := newRenderFixture(t)
	ctrl.PressButton()
	ctrl.PressButton()

	r.Frame(ctrl.Snapshot())
	assert.Equal(t, "PAUSED", display.Text(0, 7))
	assert.Equal(t, 3, display.Lit(), "board stays visible while paused")

	ctrl.PressButton()
	r.Frame(ctrl.Snapshot())
	assert.Empty(t, display.Text(0, 7))
}

func TestRendererMirrorsScoreOnLamps(t *testing.T) {
	_, r, _, lamps := newRenderFixture(t)

	s := snake.Snapshot{Body: []core.Cell{{Col: 1, Row: 1}, {Col: 2, Row: 1}}, Phase: snake.PhaseRunning, Generation: 1}
	r.Frame(s)
	assert.Equal(t, 1, lamps.Calls(), "lamps primed on first frame")
	assert.Equal(t, uint8(0), lamps.Mask())

	s.Score = 5
	r.Frame(s)
	r.Frame(s)
	assert.Equal(t, 2, lamps.Calls())
	assert.Equal(t, uint8(5), lamps.Mask())

	s.Score = 0
	s.Generation = 2
	s.Phase = snake.PhaseIdle
	r.Frame(s)
	assert.Equal(t, uint8(0), lamps.Mask(), "cleared on reset")
}

func TestScoreText(t *testing.T) {
	assert.Equal(t, "Score: 0", ScoreText(0))
	assert.Equal(t, "Score: 1234567", ScoreText(1234567))
}
