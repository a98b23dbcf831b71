package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-crossing/internal/games/crossing"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [biome]",
	Short: "Show finished runs",
	Long: `Display the ten best runs of a biome, ranked by levels cleared and then
coins. Without a biome, print a summary line per biome.

Examples:
  crossing scores
  crossing scores squid`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	b, err := crossing.ParseBiome(args[0])
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(b.ID(), 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", b.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'crossing play %s' to set the first one!\n", b.ID())
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-5s  %-7s  %s\n", "Rank", "Cleared", "Coins", "Result", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-7s  %s\n", "----", "-------", "-----", "------", "----")
	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "crossed"
		}
		fmt.Printf("  %-4d  %-7d  %-5d  %-7s  %s\n", i+1, r.LevelsCleared, r.Coins, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.GetBiomeStats(b.ID()); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Coins: %d\n", st.Runs, st.Wins, st.TotalCoins)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllBiomeStats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-16s  %-5s  %-5s  %-5s  %s\n", "Biome", "Runs", "Wins", "Best", "Last played")
	fmt.Printf("  %-16s  %-5s  %-5s  %-5s  %s\n", "-----", "----", "----", "----", "-----------")
	for _, b := range crossing.Biomes {
		st, ok := stats[b.ID()]
		if !ok {
			fmt.Printf("  %-16s  %-5d  %-5d  %-5s  %s\n", b.Title(), 0, 0, "-", "never")
			continue
		}
		fmt.Printf("  %-16s  %-5d  %-5d  %-5d  %s\n", b.Title(), st.Runs, st.Wins, st.BestLevels, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
