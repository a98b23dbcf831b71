package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-crossing/internal/platform/tui"
	"github.com/vovakirdan/biome-crossing/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a biome picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a biome.
After a round ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select biome
  Tab          - Best runs
  Q            - Quit

Examples:
  crossing menu
  crossing menu --fps 30
  crossing menu --db ./crossing.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, logFile, err := tuiLogger("crossing")
	if err != nil {
		return err
	}
	defer logFile.Close()

	store := openStore(newLogger("crossing"))
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return err
		}

		// Fresh seed per round unless one was pinned
		round := cfg
		if flagSeed == 0 {
			round.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, round, tui.WithLogger(logger)); err != nil {
			return err
		}
	}
}
