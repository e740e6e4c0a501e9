// Package term hosts the board directly on a tcell screen.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/gridsnake/internal/device"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

// BackendID is the name used with --backend.
const BackendID = "tcell"

const defaultFrameInterval = 33 * time.Millisecond

func init() {
	registry.Register(BackendID, func() registry.Backend {
		return &Backend{newScreen: tcell.NewScreen}
	})
}

// Backend draws the framebuffer with tcell and feeds keys to the keypad.
type Backend struct {
	newScreen func() (tcell.Screen, error)
}

func (b *Backend) ID() string    { return BackendID }
func (b *Backend) Title() string { return "tcell full-screen terminal" }

// Run starts the engine and draws until the player quits, ctx is done, or
// the engine stops.
func (b *Backend) Run(ctx context.Context, s *registry.Session) error {
	screen, err := b.newScreen()
	if err != nil {
		return fmt.Errorf("tcell: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcell: cannot init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	interval := s.Config.Timing.FrameInterval
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	v := newView(s)
	v.draw(screen, true)

	for {
		select {
		case <-ctx.Done():
			return <-done

		case err := <-done:
			return err

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quit := handleKey(s.Keypad, ev.Key(), ev.Rune()); quit {
					cancel()
					return <-done
				}
			case *tcell.EventResize:
				if s.Logger != nil {
					w, h := ev.Size()
					s.Logger.Debug("terminal resized", "width", w, "height", h)
				}
				screen.Sync()
				v.draw(screen, true)
			}

		case <-ticker.C:
			v.draw(screen, false)
		}
	}
}

// handleKey presses the pin bound to the key and reports a quit request.
func handleKey(k *device.Keypad, key tcell.Key, r rune) bool {
	action, d := mapKey(key, r)
	switch action {
	case keyQuit:
		return true
	case keyButton:
		k.PressButton()
	case keySteer:
		k.PressDirection(d)
	}
	return false
}

// view remembers what was last shown so idle frames are skipped.
type view struct {
	session *registry.Session
	version uint64
	last    status
	best    int
}

func newView(s *registry.Session) *view {
	return &view{session: s, best: s.BestScore}
}

type surface interface {
	canvas
	Clear()
	Show()
}

func (v *view) draw(sc surface, force bool) {
	fb, version := v.session.Display.Snapshot()
	st := status{snap: v.session.Controller.Snapshot(), best: v.best}
	if v.session.Lamps != nil {
		st.lamps = v.session.Lamps.Mask()
	}
	v.best = max(v.best, st.snap.Score)

	if !force && version == v.version && st.lamps == v.last.lamps &&
		st.snap.Score == v.last.snap.Score && st.snap.Phase == v.last.snap.Phase &&
		len(st.snap.Body) == len(v.last.snap.Body) {
		return
	}
	v.version, v.last = version, st

	sc.Clear()
	drawBoard(sc, fb)
	drawPanel(sc, fb.Width()+4, st)
	sc.Show()
}
