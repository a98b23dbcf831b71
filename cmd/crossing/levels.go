package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/games/crossing"
	"github.com/vovakirdan/biome-crossing/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [biome]",
	Short: "Show the level sets in use",
	Long: `Print every level of a biome (or of all biomes): its name, coin quota
and how many platforms and enemies it places. Sets from --levels are
validated the same way the game validates them, so this doubles as a
checker for hand-written level files.

Examples:
  crossing levels
  crossing levels space
  crossing levels --levels ./levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, args []string) error {
	cfg, _, err := config.LoadCrossing(flagConfig)
	if err != nil {
		return err
	}
	loader := levels.NewLoader(flagLevels, levels.Grid{Columns: cfg.World.Columns, Rows: len(cfg.World.Lanes)})

	biomes := crossing.Biomes
	if len(args) == 1 {
		b, err := crossing.ParseBiome(args[0])
		if err != nil {
			return err
		}
		biomes = []crossing.Biome{b}
	}

	for i, b := range biomes {
		set, err := loader.Load(b.ID())
		if err != nil {
			return fmt.Errorf("%s: %w", b.ID(), err)
		}
		if i > 0 {
			fmt.Println()
		}
		printSet(b, set)
	}
	return nil
}

func printSet(b crossing.Biome, set levels.Set) {
	source := set.Source
	if source == "" {
		source = "built-in"
	}
	title := set.Title
	if title == "" {
		title = b.Title()
	}
	fmt.Printf("%s (%s)\n\n", title, source)

	fmt.Printf("  %-3s  %-20s  %-6s  %-9s  %-7s  %s\n", "#", "Name", "Coins", "Platforms", "Enemies", "Story")
	fmt.Printf("  %-3s  %-20s  %-6s  %-9s  %-7s  %s\n", "-", "----", "-----", "---------", "-------", "-----")
	for i, l := range set.Levels {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		coins := fmt.Sprintf("%d/%d", l.NeedCoins, l.TotalCoins())
		fmt.Printf("  %-3d  %-20s  %-6s  %-9d  %-7d  %s\n", i+1, name, coins, len(l.Platforms), len(l.Enemies), l.Story)
	}
}
