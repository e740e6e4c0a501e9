package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/device"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

func newTestSession(t *testing.T) (*registry.Session, *device.Bus) {
	t.Helper()
	cfg := config.Default()
	bus := device.NewBus()
	keypad := device.NewKeypad(bus, cfg.GPIO, time.Hour)
	t.Cleanup(keypad.Close)

	return &registry.Session{
		Config:     cfg,
		Controller: snake.NewController(cfg.Grid(), device.NewSeqRandom(0), 0),
		Display:    device.NewFramebuffer(cfg.Grid(), cfg.Font.Width, cfg.Font.Height),
		Keypad:     keypad,
		Lamps:      device.NewLampBank(bus, cfg.GPIO),
		BestScore:  7,
	}, bus
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysPressPins(t *testing.T) {
	s, bus := newTestSession(t)
	pins := s.Config.GPIO
	var m tea.Model = NewModel(s)

	m, _ = m.Update(runes(" "))
	assert.False(t, bus.Level(pins.Button), "space holds the button low")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, bus.Level(pins.Left))

	_, _ = m.Update(runes("w"))
	assert.False(t, bus.Level(pins.Up))

	assert.True(t, bus.Level(pins.Down))
	assert.True(t, bus.Level(pins.Right))
}

func TestKeysNeverTouchController(t *testing.T) {
	s, _ := newTestSession(t)
	m := NewModel(s)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, snake.PhaseIdle, s.Controller.Phase(), "only the engine reads the pins")
}

func TestQuitKey(t *testing.T) {
	s, _ := newTestSession(t)
	m := NewModel(s)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}

func TestFrameRefresh(t *testing.T) {
	s, _ := newTestSession(t)
	m := NewModel(s)

	s.Display.DrawText(1, 7, "SNAKE")
	s.Lamps.SetIndicator(5)
	s.Controller.PressButton()

	next, cmd := m.Update(FrameMsg(time.Now()))
	require.NotNil(t, cmd, "frames keep coming")
	got := next.(Model)

	assert.Equal(t, uint8(5), got.lamps)
	assert.Equal(t, snake.PhaseRunning, got.status.Phase)
	assert.Equal(t, 7, got.best)
	view := got.View()
	assert.Contains(t, view, "SNAKE")
	assert.Contains(t, view, "RUNNING")
}

func TestEngineDoneQuits(t *testing.T) {
	s, _ := newTestSession(t)
	next, cmd := NewModel(s).Update(engineDoneMsg{})
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestKeyMapDirection(t *testing.T) {
	k := DefaultKeyMap()
	assert.Equal(t, core.DirUp, k.Direction(tea.KeyMsg{Type: tea.KeyUp}))
	assert.Equal(t, core.DirDown, k.Direction(runes("s")))
	assert.Equal(t, core.DirLeft, k.Direction(runes("h")))
	assert.Equal(t, core.DirRight, k.Direction(runes("d")))
	assert.Equal(t, core.DirNone, k.Direction(runes("x")))
}

func TestPhaseLabel(t *testing.T) {
	assert.Equal(t, "GAME OVER", PhaseLabel(snake.PhaseGameOver))
	assert.Equal(t, "IDLE", PhaseLabel(snake.PhaseIdle))
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(1, 1, "SNAKE", core.ColorWhite)
	s.SetGlyph(0, 0, core.Glyph{Rune: '█', Color: core.ColorGreen})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "█")
	assert.Contains(t, lines[1], "SNAKE")
}

func TestScreenshotKey(t *testing.T) {
	s, _ := newTestSession(t)
	m := NewModel(s)
	m.shotDir = t.TempDir()
	s.Display.DrawText(1, 7, "SNAKE")
	s.Lamps.SetIndicator(3)

	next, _ := m.Update(FrameMsg(time.Now()))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	got := next.(Model)
	require.True(t, strings.HasPrefix(got.notice, "saved "), got.notice)

	data, err := os.ReadFile(strings.TrimPrefix(got.notice, "saved "))
	require.NoError(t, err)
	assert.Contains(t, string(data), "SNAKE")
	assert.Contains(t, string(data), "Score 0  Lamps ○ ○ ○ ○ ○ ○ ● ●")
}

func TestPlainLamps(t *testing.T) {
	assert.Equal(t, "○ ○ ○ ○ ○ ● ○ ●", PlainLamps(5))
	assert.Equal(t, "● ○ ○ ○ ○ ○ ○ ○", PlainLamps(0x80))
}
