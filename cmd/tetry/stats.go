package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetry/internal/registry"
	"github.com/vovakirdan/tetry/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for every mode played",
	Long: `Display games played, best and average score and lines cleared
for every mode with recorded scores.

Examples:
  tetry stats
  tetry stats --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-20s  %6s  %8s  %8s  %7s  %9s  %s\n", "Mode", "Games", "Best", "Avg", "Lines", "BestLines", "Last played")
	for _, id := range ids {
		s := stats[id]
		name := id
		if g, err := registry.Create(id); err == nil {
			name = g.Title()
		}
		fmt.Printf("  %-20s  %6d  %8d  %8.0f  %7d  %9d  %s\n",
			name, s.GamesCount, s.HighScore, s.AvgScore, s.TotalLines, s.BestLines, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
