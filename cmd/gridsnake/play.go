package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/device"
	"github.com/vovakirdan/gridsnake/internal/engine"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// panelWidth is the room backends need next to the board for the status panel.
const panelWidth = 24

var (
	flagBackend string
	flagSound   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start the board and play.

Controls:
  Space/Enter    - Push button: start, pause, resume, restart
  Arrows/WASD    - Joystick
  Q/Ctrl+C       - Quit

The score is shown in binary on the eight lamps. Every finished run is
saved to the scores database; a run cut short by quitting is saved with
reason "quit".

Examples:
  gridsnake play
  gridsnake play --backend tcell
  gridsnake play --seed 42 --sound
  gridsnake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagBackend, "backend", "b", "tui", "Display backend (see 'gridsnake backends')")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Chirp on the speaker when the score rises")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(cmd *cobra.Command) error {
	if !registry.Exists(flagBackend) {
		return fmt.Errorf("unknown backend %q (run 'gridsnake backends')", flagBackend)
	}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	grid := cfg.Grid()

	logger, closeLog, err := newLogger(flagLogFile, flagVerbose)
	if err != nil {
		return fmt.Errorf("cannot open log: %w", err)
	}
	defer closeLog()

	needW, needH := grid.Width*device.CellColumns+2+panelWidth, grid.Height+4
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < needW || h < needH) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs %dx%d\n", w, h, needW, needH)
	}

	// The board: pins, lamps and the emulated keypad on one bus.
	bus := device.NewBus()
	keypad := device.NewKeypad(bus, cfg.GPIO, cfg.Timing.KeyHold)
	defer keypad.Close()
	lamps := device.NewLampBank(bus, cfg.GPIO)

	indicator := device.Indicators{lamps}
	if flagSound {
		buzzer := audio.NewBuzzer()
		if err := buzzer.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer buzzer.Close()
			indicator = append(indicator, buzzer)
		}
	}

	ctrl := snake.NewController(grid, device.NewMathRandom(cfg.Seed), cfg.Apple.MaxAttempts)
	fb := device.NewFramebuffer(grid, cfg.Font.Width, cfg.Font.Height)
	board := engine.BoardName(grid.Width, grid.Height)

	opts := engine.Options{
		TickPeriod:    cfg.Timing.TickPeriod,
		PollInterval:  cfg.Timing.PollInterval,
		FrameInterval: cfg.Timing.FrameInterval,
		Logger:        logger,
	}

	best := 0
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		opts.Recorder = store
		if hs, err := store.HighScore(board); err == nil {
			best = hs
		}
	}

	eng := engine.New(ctrl, fb, device.NewPinInput(bus, cfg.GPIO), indicator, opts)

	backend, err := registry.Create(flagBackend)
	if err != nil {
		return err
	}
	session := &registry.Session{
		Config:     cfg,
		Controller: ctrl,
		Display:    fb,
		Keypad:     keypad,
		Lamps:      lamps,
		BestScore:  best,
		Logger:     logger,
		Start:      eng.Run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("session started",
		"backend", backend.ID(),
		"config", source,
		"board", board,
		"seed", cfg.Seed,
	)
	runErr := backend.Run(ctx, session)
	logger.Info("session ended", "score", ctrl.Score(), "best", max(best, ctrl.Score()))

	if runErr != nil {
		return fmt.Errorf("%s backend: %w", backend.ID(), runErr)
	}
	return nil
}
