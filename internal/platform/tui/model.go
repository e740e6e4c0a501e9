package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

const defaultFrameInterval = 33 * time.Millisecond

// Model is the Bubble Tea model that mirrors the board. It never touches
// game state directly: keys become pin presses on the keypad and the picture
// comes from the framebuffer the engine draws into.
type Model struct {
	session  *registry.Session
	keys     KeyMap
	help     help.Model
	interval time.Duration

	screen  *core.Screen
	version uint64
	status  snake.Snapshot
	lamps   uint8
	best    int

	shotDir  string
	notice   string
	width    int
	height   int
	quitting bool
}

// NewModel creates a model for s.
func NewModel(s *registry.Session) Model {
	interval := s.Config.Timing.FrameInterval
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	screen, version := s.Display.Snapshot()

	shotDir := ""
	if dir := config.Dir(); dir != "" {
		shotDir = filepath.Join(dir, "screenshots")
	}

	return Model{
		session:  s,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		interval: interval,
		screen:   screen,
		version:  version,
		status:   s.Controller.Snapshot(),
		best:     s.BestScore,
		shotDir:  shotDir,
	}
}

// Init starts the repaint loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.refresh()
		return m, frameCmd(m.interval)

	case engineDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.notice = "screenshot failed: " + err.Error()
		} else {
			m.notice = "saved " + path
		}

	case key.Matches(msg, m.keys.Button):
		m.session.Keypad.PressButton()

	default:
		if d := m.keys.Direction(msg); d != core.DirNone {
			m.session.Keypad.PressDirection(d)
		}
	}

	return m, nil
}

// refresh pulls the latest picture, lamps and status.
func (m *Model) refresh() {
	if v := m.session.Display.Version(); v != m.version {
		m.screen, m.version = m.session.Display.Snapshot()
	}
	m.status = m.session.Controller.Snapshot()
	if m.session.Lamps != nil {
		m.lamps = m.session.Lamps.Mask()
	}
	m.best = max(m.best, m.status.Score)
}

// saveScreenshot writes the current board as plain text, followed by the
// score and the lamp bank.
func (m Model) saveScreenshot() (string, error) {
	if m.shotDir == "" {
		return "", fmt.Errorf("no home directory")
	}
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("snake_%s.txt", timestamp))
	text := fmt.Sprintf("%s\n\nScore %d  Lamps %s\n", m.screen.String(), m.status.Score, PlainLamps(m.lamps))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the board with its status panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	board := boardStyle.Render(RenderScreen(m.screen))
	panel := panelStyle.Render(m.renderPanel())

	var b strings.Builder
	b.WriteString(titleStyle.Render("GRIDSNAKE"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, panel))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(labelStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderPanel() string {
	row := func(label string, value any) string {
		return fmt.Sprintf("%s %v", labelStyle.Render(fmt.Sprintf("%-7s", label)), value)
	}

	lines := []string{
		row("Score", m.status.Score),
		row("Best", m.best),
		row("Length", len(m.status.Body)),
		row("State", PhaseLabel(m.status.Phase)),
		"",
		labelStyle.Render("Lamps"),
		LampString(m.lamps),
	}
	return strings.Join(lines, "\n")
}

// PhaseLabel is the status text for p.
func PhaseLabel(p snake.Phase) string {
	return strings.ToUpper(strings.ReplaceAll(p.String(), "_", " "))
}
