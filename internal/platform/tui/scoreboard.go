package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/storage"
)

const maxRuns = 100

// RecentTab is the pseudo-board listing the latest runs on every board.
const RecentTab = "recent"

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	emptyStyle     = labelStyle.Italic(true).Padding(1, 2)
)

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Close key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Close}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "prev board"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next board"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
	}
}

// RunSource is the part of the store the scoreboard reads.
type RunSource interface {
	TopRuns(board string, limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	AllStats() (map[string]*storage.BoardStats, error)
}

// ScoreboardModel lists recorded runs, one tab per board size plus RecentTab.
type ScoreboardModel struct {
	store RunSource
	stats map[string]*storage.BoardStats
	tabs  []string // Board names, then RecentTab
	tab   int
	runs  []storage.Run

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int
	closed bool
}

// NewScoreboardModel creates a scoreboard. board, if it has runs, is
// selected first.
func NewScoreboardModel(store RunSource, board string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}

	if store != nil {
		if stats, err := store.AllStats(); err == nil {
			m.stats = stats
		}
	}
	for name := range m.stats {
		m.tabs = append(m.tabs, name)
	}
	sort.Strings(m.tabs)
	m.tabs = append(m.tabs, RecentTab)

	for i, name := range m.tabs {
		if name == board {
			m.tab = i
		}
	}
	m.load()
	return m
}

// Tab returns the selected board, or RecentTab.
func (m ScoreboardModel) Tab() string {
	return m.tabs[m.tab]
}

func (m ScoreboardModel) recent() bool {
	return m.Tab() == RecentTab
}

// load fetches the runs of the selected tab and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.runs = nil
	if m.store != nil {
		var err error
		if m.recent() {
			m.runs, err = m.store.RecentRuns(maxRuns)
		} else {
			m.runs, err = m.store.TopRuns(m.Tab(), maxRuns)
		}
		if err != nil {
			m.runs = nil
		}
	}
	m.rebuild()
}

func (m *ScoreboardModel) rebuild() {
	var cols []table.Column
	if m.recent() {
		cols = []table.Column{
			{Title: "Board", Width: 8},
			{Title: "Score", Width: 6},
			{Title: "Reason", Width: 11},
			{Title: "Played", Width: 13},
		}
	} else {
		cols = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 6},
			{Title: "Length", Width: 7},
			{Title: "Ticks", Width: 7},
			{Title: "Played", Width: 13},
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		played := r.CreatedAt.Format("Jan 02 15:04")
		if m.recent() {
			rows[i] = table.Row{r.Board, strconv.Itoa(r.Score), r.Reason, played}
		} else {
			rows[i] = table.Row{"#" + strconv.Itoa(i+1), strconv.Itoa(r.Score), strconv.Itoa(r.Length), strconv.FormatInt(r.Ticks, 10), played}
		}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("229")).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("10")).Bold(true)

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
		table.WithStyles(styles),
	)
}

func (m *ScoreboardModel) moveTab(delta int) {
	n := len(m.tabs)
	m.tab = ((m.tab+delta)%n + n) % n
	m.load()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update switches tabs and scrolls the table.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			m.closed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View draws the tab strip, the runs and the board summary.
func (m ScoreboardModel) View() string {
	if m.closed {
		return ""
	}

	body := emptyStyle.Render("No runs recorded yet.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}

	lines := []string{
		titleStyle.Render("GRIDSNAKE SCORES"),
		m.tabStrip(),
		boardStyle.Render(body),
	}
	if s := m.summary(); s != "" {
		lines = append(lines, labelStyle.Render(s))
	}
	lines = append(lines, labelStyle.Render(m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}

// tabStrip shows every tab, or only the selected one with arrows when the
// strip does not fit.
func (m ScoreboardModel) tabStrip() string {
	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := tabStyle
		if i == m.tab {
			style = activeTabStyle
		}
		parts[i] = style.Render(tabTitle(t))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.width > 0 && lipgloss.Width(strip) > m.width {
		strip = activeTabStyle.Render("‹ " + tabTitle(m.Tab()) + " ›")
	}
	return strip
}

// summary describes the selected board from its stats.
func (m ScoreboardModel) summary() string {
	st, ok := m.stats[m.Tab()]
	if !ok || st.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games  best %d  avg %.1f  longest %d  last %s",
		st.GamesCount, st.HighScore, st.AvgScore, st.LongestBody, st.LastPlayed.Format("Jan 02 15:04"))
}

func tabTitle(tab string) string {
	if tab == RecentTab {
		return "Recent"
	}
	return tab
}

// RunScoreboard shows the scoreboard until it is closed.
func RunScoreboard(store RunSource, board string, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(store, board, width, height), tea.WithAltScreen()).Run()
	return err
}
