package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetry/internal/platform/tui"
	"github.com/vovakirdan/tetry/internal/registry"
	"github.com/vovakirdan/tetry/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start tetry with a mode picker menu",
	Long: `Start tetry in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to pick a difficulty
and Enter to play. Press B after a game ends or while paused to return
to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select mode
  Tab             - High scores
  Q               - Quit

Examples:
  tetry menu
  tetry menu --fps 30
  tetry menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// The menu choice wins over the --difficulty flag
		difficulty := flagDifficulty
		if menuResult.Difficulty != "" {
			difficulty = string(menuResult.Difficulty)
		}
		if err := configureGame(game, flagConfig, difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update seed for each game unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg, tui.WithPlayer(os.Getenv("USER")))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
