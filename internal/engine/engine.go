// Package engine runs the four game tasks (button, joystick, tick and render)
// against one shared snake.Controller.
package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/device"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// Recorder persists finished runs. *storage.Store implements it.
type Recorder interface {
	SaveRun(run storage.Run) (int64, error)
}

// Options configures the task cadence and collaborators.
type Options struct {
	TickPeriod    time.Duration
	PollInterval  time.Duration
	FrameInterval time.Duration

	Logger   *log.Logger // nil discards
	Recorder Recorder    // nil skips persistence
}

// Engine wires a controller to its devices.
type Engine struct {
	ctrl     *snake.Controller
	input    device.Input
	renderer *Renderer
	opts     Options
	logger   *log.Logger

	mu     sync.Mutex
	runGen uint64 // Generation the current run id belongs to
	runID  string
	saved  bool // The current run has been recorded
}

// New creates an engine. The display and indicator are driven only by the
// render task.
func New(ctrl *snake.Controller, display device.Display, input device.Input, indicator device.Indicator, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if indicator == nil {
		indicator = device.NopIndicator{}
	}
	return &Engine{
		ctrl:     ctrl,
		input:    input,
		renderer: NewRenderer(ctrl.Grid(), display, indicator),
		opts:     opts,
		logger:   logger,
	}
}

// Controller returns the shared game state.
func (e *Engine) Controller() *snake.Controller {
	return e.ctrl
}

// Run starts every task and blocks until ctx is cancelled and all of them
// have returned. A run still in progress is recorded with reason "quit".
func (e *Engine) Run(ctx context.Context) error {
	if e.opts.TickPeriod <= 0 || e.opts.PollInterval <= 0 || e.opts.FrameInterval <= 0 {
		return fmt.Errorf("engine: periods must be positive")
	}

	e.logger.Info("engine starting",
		"tick", e.opts.TickPeriod,
		"poll", e.opts.PollInterval,
		"frame", e.opts.FrameInterval,
	)

	var wg sync.WaitGroup
	tasks := []struct {
		name string
		fn   func(context.Context)
	}{
		{"button", e.ButtonTask},
		{"joystick", e.JoystickTask},
		{"tick", e.TickTask},
		{"render", e.RenderTask},
	}
	for _, t := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.fn(ctx)
			e.logger.Debug("task stopped", "task", t.name)
		}()
	}

	<-ctx.Done()
	wg.Wait()

	e.recordQuit()
	e.logger.Info("engine stopped")
	return nil
}

// ButtonTask polls the push button. A press counts once the button is
// released, then toggles running or restarts after game over.
func (e *Engine) ButtonTask(ctx context.Context) {
	for {
		if e.input.IsButtonPressed() {
			if !e.waitRelease(ctx) {
				return
			}
			phase := e.ctrl.PressButton()
			e.logger.Debug("button", "phase", phase)
		}
		if !sleep(ctx, e.opts.PollInterval) {
			return
		}
	}
}

func (e *Engine) waitRelease(ctx context.Context) bool {
	for e.input.IsButtonPressed() {
		if !sleep(ctx, e.opts.PollInterval) {
			return false
		}
	}
	return true
}

// JoystickTask polls the joystick while the game runs. Directions are tried
// up, down, left, right; the first one the controller accepts wins.
func (e *Engine) JoystickTask(ctx context.Context) {
	for {
		if e.ctrl.Running() {
			e.pollJoystick()
		}
		if !sleep(ctx, e.opts.PollInterval) {
			return
		}
	}
}

func (e *Engine) pollJoystick() {
	for _, d := range core.JoystickOrder {
		if e.input.IsJoystickAsserted(d) && e.ctrl.SetDirection(d) {
			return
		}
	}
}

// TickTask advances the game once per tick period.
func (e *Engine) TickTask(ctx context.Context) {
	ticker := time.NewTicker(e.opts.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.step()
		}
	}
}

// step runs one tick and handles its outcome.
func (e *Engine) step() snake.Outcome {
	out, snap := e.ctrl.TickSnapshot()
	if out == snake.OutcomeNone {
		return out
	}

	runID := e.track(snap)

	switch {
	case out == snake.OutcomeGrew:
		e.logger.Debug("apple eaten", "score", snap.Score, "length", len(snap.Body))
	case out.Ended():
		e.logger.Info("game over",
			"run", runID,
			"reason", out,
			"score", snap.Score,
			"length", len(snap.Body),
			"ticks", snap.Ticks,
		)
		e.logger.Debug("final state", "state", snap.DebugState())
		e.record(snap, out.String())
	}
	return out
}

// track returns the run id of snap's generation, minting one on its first tick.
func (e *Engine) track(snap snake.Snapshot) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if snap.Generation != e.runGen || e.runID == "" {
		e.runGen = snap.Generation
		e.runID = storage.NewRunID()
		e.saved = false
		e.logger.Debug("run started", "run", e.runID)
	}
	return e.runID
}

// record saves the current run once.
func (e *Engine) record(snap snake.Snapshot, reason string) {
	e.mu.Lock()
	if e.saved || e.runID == "" || snap.Generation != e.runGen {
		e.mu.Unlock()
		return
	}
	e.saved = true
	runID := e.runID
	e.mu.Unlock()

	if e.opts.Recorder == nil {
		return
	}
	_, err := e.opts.Recorder.SaveRun(storage.Run{
		RunID:  runID,
		Board:  BoardName(e.ctrl.Grid().Width, e.ctrl.Grid().Height),
		Score:  snap.Score,
		Length: len(snap.Body),
		Ticks:  int64(snap.Ticks),
		Reason: reason,
	})
	if err != nil {
		// Persistence is best effort; the game goes on.
		e.logger.Warn("could not save run", "run", runID, "error", err)
	}
}

func (e *Engine) recordQuit() {
	snap := e.ctrl.Snapshot()
	if snap.Phase == snake.PhaseGameOver || snap.Ticks == 0 {
		return
	}
	e.record(snap, "quit")
}

// RenderTask draws a snapshot every frame interval.
func (e *Engine) RenderTask(ctx context.Context) {
	for {
		e.renderer.Frame(e.ctrl.Snapshot())
		if !sleep(ctx, e.opts.FrameInterval) {
			return
		}
	}
}

// BoardName labels a grid size for score tables.
func BoardName(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// sleep waits d or until ctx is done. It reports false when ctx is done.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
