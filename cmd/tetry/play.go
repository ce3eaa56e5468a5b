package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetry/internal/core"
	"github.com/vovakirdan/tetry/internal/games/tetris"
	"github.com/vovakirdan/tetry/internal/platform/tui"
	"github.com/vovakirdan/tetry/internal/registry"
	"github.com/vovakirdan/tetry/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tetris).

Controls:
  Left/Right, A/D, H/L  - Move
  Down, S, J            - Soft drop
  Space                 - Hard drop
  Up, W, X, K           - Rotate
  C                     - Hold
  P/Esc                 - Pause
  R                     - Restart (after game over)
  Q/Ctrl+C              - Quit
  Ctrl+S                - Save a screenshot to ~/.tetry/screenshots

Difficulty options:
  easy   - Start at lowest gravity, slower auto-repeat, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, levels come twice as fast
  fixed  - No progression, stays at config's initial level

Examples:
  tetry play
  tetry play tetris_classic
  tetry play --difficulty hard
  tetry play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tetris.IDMarathon
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetry list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if err := configureGame(game, flagConfig, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig(), tui.WithPlayer(os.Getenv("USER")))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// configureGame applies a config file and difficulty preset to games
// that accept them.
func configureGame(game registry.Game, configPath, difficulty string) error {
	c, ok := game.(registry.Configurable)
	if !ok {
		return nil
	}
	if err := c.Configure(configPath, difficulty); err != nil {
		return fmt.Errorf("cannot configure %s: %w", game.ID(), err)
	}
	return nil
}
