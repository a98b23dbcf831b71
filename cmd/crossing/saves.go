package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-crossing/internal/games/crossing"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

var flagDeleteSlot string

var savesCmd = &cobra.Command{
	Use:   "saves [biome]",
	Short: "List or delete save slots",
	Long: `List the saved games in the database, newest first. In game, F5 writes
the "quick" slot of the biome being played and F9 restores it.

Examples:
  crossing saves
  crossing saves river
  crossing saves river --delete quick`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSlot, "delete", "", "Delete the named slot of the given biome")
}

func runSaves(_ *cobra.Command, args []string) error {
	biome := ""
	if len(args) == 1 {
		b, err := crossing.ParseBiome(args[0])
		if err != nil {
			return err
		}
		biome = b.ID()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDeleteSlot != "" {
		if biome == "" {
			return fmt.Errorf("--delete needs a biome")
		}
		if err := store.DeleteSlot(biome, flagDeleteSlot); err != nil {
			return err
		}
		newLogger("saves").Info("slot deleted", "biome", biome, "slot", flagDeleteSlot)
		return nil
	}

	slots, err := store.ListSlots(biome)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	fmt.Printf("  %-6s  %-10s  %-5s  %-16s  %s\n", "Biome", "Slot", "Level", "Saved", "ID")
	fmt.Printf("  %-6s  %-10s  %-5s  %-16s  %s\n", "-----", "----", "-----", "-----", "--")
	for _, s := range slots {
		fmt.Printf("  %-6s  %-10s  %-5d  %-16s  %s\n", s.Biome, s.Slot, s.Level+1, s.CreatedAt.Format("2006-01-02 15:04"), s.ID)
	}
	return nil
}
