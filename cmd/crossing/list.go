package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/games/crossing"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all biomes",
	Long:  `Shows every biome with its movement style and what stands in your way.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg, _, err := config.LoadCrossing(flagConfig)
	if err != nil {
		cfg = config.DefaultCrossingConfig()
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range crossing.Biomes {
		if len(b.ID()) > maxIDLen {
			maxIDLen = len(b.ID())
		}
	}

	fmt.Println("Available biomes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-16s  %-8s  %-12s  %s\n", maxIDLen, "ID", "Title", "Moves", "Action", "Hazards")
	fmt.Printf("  %-*s  %-16s  %-8s  %-12s  %s\n", maxIDLen, "--", "-----", "-----", "------", "-------")

	for _, b := range crossing.Biomes {
		tr := crossing.TraitsFor(b, cfg)
		fmt.Printf("  %-*s  %-16s  %-8s  %-12s  %s\n", maxIDLen, b.ID(), b.Title(), tr.Locomotion, tr.Action, hazards(tr))
	}

	fmt.Println()
	fmt.Println("Run 'crossing play <id>' to play a biome.")
}

func hazards(tr crossing.Traits) string {
	s := "enemies"
	if tr.StripHazard {
		s += ", open strip"
	}
	if tr.Sentinel {
		s += ", sentinel"
	}
	if tr.CoinGate {
		s += ", coin gate"
	}
	return s
}
