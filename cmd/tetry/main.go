// tetry is a falling block puzzle game for the terminal.
//
// Usage:
//
//	tetry list              - List available modes
//	tetry play [mode]       - Play a mode (default: tetris)
//	tetry menu              - Start menu to pick a mode interactively
//	tetry serve             - Start SSH server for remote play
//	tetry scores <mode>     - Show high scores for a mode
//	tetry stats             - Show statistics for every mode played
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.tetry/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tetry/internal/games/tetris"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetry",
	Short: "tetry - falling blocks in your terminal",
	Long: `tetry is a terminal falling block puzzle game with a 7-bag
randomizer, hold, ghost piece and lock delay.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  stats    - View statistics

Examples:
  tetry play
  tetry play tetris_classic --difficulty hard
  tetry menu
  tetry serve --ssh :2222
  tetry scores tetris`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetry/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
}
