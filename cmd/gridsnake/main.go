// gridsnake plays Snake on an emulated 320x240 board in the terminal.
//
// Usage:
//
//	gridsnake play             - Play on the default backend
//	gridsnake backends         - List display backends
//	gridsnake scores [board]   - Show recorded runs
//	gridsnake config           - Print the effective configuration
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible apples
//	--db <path>       - Set database path (default: ~/.gridsnake/scores.db)
//	--config <path>   - Use a custom snake.yaml
//	--log-file <path> - Write logs here (default: ~/.gridsnake/gridsnake.log, "-" for stderr)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/gridsnake/internal/platform/term"
	_ "github.com/vovakirdan/gridsnake/internal/platform/tui"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridsnake",
	Short: "Snake on an emulated microcontroller board",
	Long: `gridsnake runs the classic Snake game the way a small board does:
a push button, a four-way joystick, eight score lamps and a 320x240
display, each served by its own task around one shared game state.

Available commands:
  play      - Play a game
  backends  - Show the display backends
  scores    - View recorded runs
  config    - Print the effective configuration

Examples:
  gridsnake play
  gridsnake play --backend tcell --sound
  gridsnake scores --plain
  gridsnake config > ~/.gridsnake/configs/snake.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridsnake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", `Log file ("-" for stderr)`)
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
