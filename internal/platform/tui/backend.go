package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridsnake/internal/registry"
)

// BackendID is the name used with --backend.
const BackendID = "tui"

func init() {
	registry.Register(BackendID, func() registry.Backend { return &Backend{} })
}

// Backend runs the board inside a Bubble Tea program.
type Backend struct{}

func (b *Backend) ID() string    { return BackendID }
func (b *Backend) Title() string { return "Bubble Tea terminal UI" }

// Run starts the engine and the program, and stops both when either ends.
func (b *Backend) Run(ctx context.Context, s *registry.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		NewModel(s),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	done := make(chan error, 1)
	go func() {
		err := s.Start(ctx)
		done <- err
		p.Send(engineDoneMsg{err: err})
	}()

	_, err := p.Run()
	cancel()
	engineErr := <-done
	if s.Logger != nil {
		s.Logger.Debug("program exited", "backend", BackendID, "error", err, "engine_error", engineErr)
	}

	if engineErr != nil {
		return engineErr
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
