package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/engine"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagScoresPlain  bool
	flagScoresRecent bool
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show recorded runs",
	Long: `Display the best runs for a board, e.g. "16x12". Without a board the
one from the current configuration is used. On a terminal an interactive
scoreboard opens; --plain prints a table instead.

Examples:
  gridsnake scores
  gridsnake scores 16x12 --plain
  gridsnake scores --recent --plain
  gridsnake scores 16x12 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain table")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs on every board")
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Rows to print with --plain")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run recorded for the board")
}

func runScores(cmd *cobra.Command, args []string) {
	board := ""
	if len(args) == 1 {
		board = args[0]
	} else {
		cfg, _, err := config.Load(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		board = engine.BoardName(cfg.Grid().Width, cfg.Grid().Height)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		err = store.ClearRuns(board)
		if err == nil {
			fmt.Printf("Cleared runs for %s.\n", board)
		}
	case flagScoresPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		err = printScores(store, board)
	default:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if flagScoresRecent {
			board = tui.RecentTab
		}
		err = tui.RunScoreboard(store, board, width, height)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, board string) error {
	if flagScoresRecent {
		runs, err := store.RecentRuns(flagScoresLimit)
		if err != nil {
			return err
		}
		fmt.Println("Recent runs")
		fmt.Println()
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}
		fmt.Printf("  %-8s  %-6s  %-10s  %s\n", "Board", "Score", "Reason", "Date")
		fmt.Printf("  %-8s  %-6s  %-10s  %s\n", "-----", "-----", "------", "----")
		for _, r := range runs {
			fmt.Printf("  %-8s  %-6d  %-10s  %s\n", r.Board, r.Score, r.Reason, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	}

	runs, err := store.TopRuns(board, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", board)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gridsnake play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-10s  %s\n", "Rank", "Score", "Length", "Ticks", "Reason", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-10s  %s\n", "----", "-----", "------", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-7d  %-10s  %s\n",
			i+1, r.Score, r.Length, r.Ticks, r.Reason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(board); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f  Longest: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LongestBody)
	}
	return nil
}
