package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-crossing/internal/games/crossing"
	"github.com/vovakirdan/biome-crossing/internal/levels"
	"github.com/vovakirdan/biome-crossing/internal/platform/tui"
	"github.com/vovakirdan/biome-crossing/internal/registry"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play <biome>",
	Short: "Play a biome",
	Long: `Start playing the specified biome.

Controls:
  Arrows/WASD  - Move
  Space        - Jump (river) or hover (space)
  P/Esc        - Pause
  N/Enter      - Continue past story cards and cleared levels
  R            - Restart after game over
  F5 / F9      - Save / load the quick slot
  B            - Back (when paused or finished)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five lives, longer blink after a hit, speeds start low
  normal - Speeds start at 30% and ramp up level by level
  hard   - Two lives, speeds start at 70%
  fixed  - Level-table speeds, no ramp

Examples:
  crossing play river
  crossing play space --difficulty hard
  crossing play squid --levels ./levels --watch
  crossing play river --config ./my-crossing.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files from --levels when they change")
}

func runPlay(cmd *cobra.Command, args []string) error {
	biome, err := crossing.ParseBiome(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'crossing list' to see biomes)", err)
	}
	if flagWatch && flagLevels == "" {
		return errors.New("--watch needs --levels")
	}

	game, err := registry.Create(biome.ID())
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	logger, logFile, err := tuiLogger("crossing")
	if err != nil {
		return err
	}
	defer logFile.Close()

	store := openStore(newLogger("crossing"))
	if store != nil {
		defer store.Close()
	}

	opts := []tui.Option{tui.WithLogger(logger)}
	if flagWatch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		w, err := levels.NewWatcher(ctx, flagLevels)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", flagLevels, err)
		}
		defer w.Close()
		opts = append(opts, tui.WithLevelChanges(w.Events))
	}

	if err := tui.Run(game, store, runtimeConfig(), opts...); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
