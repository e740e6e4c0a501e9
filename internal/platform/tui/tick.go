// Package tui hosts the board in a Bubble Tea program. The engine runs in the
// background and draws into a framebuffer; the program repaints from it and
// turns key presses into pin levels on the keypad.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent to trigger a repaint from the framebuffer.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends a frame message after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// engineDoneMsg reports that the engine stopped on its own.
type engineDoneMsg struct{ err error }
