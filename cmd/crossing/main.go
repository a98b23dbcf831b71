// crossing is a terminal obstacle-crossing game with river, space and squid biomes.
//
// Usage:
//
//	crossing list                 - List available biomes
//	crossing play <biome>         - Play a biome
//	crossing menu                 - Pick biomes interactively
//	crossing levels [biome]       - Show the level sets
//	crossing simulate <biome>     - Run a round headless and print its outcome
//	crossing saves [biome]        - List or delete save slots
//	crossing scores [biome]       - Show finished runs
//	crossing serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.crossing/crossing.db)
//	--config <path>       - Custom crossing.yaml tuning file
//	--levels <dir>        - Directory of <biome>.yaml level overrides
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/games/crossing"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crossing",
	Short: "Biome Crossing - get across the river, the void and the squid's gaze",
	Long: `Biome Crossing is a terminal game about getting from one side of the
screen to the other. Ride moving platforms, dodge patrolling enemies and
collect coins across three biomes: river, space and squid.

Available commands:
  list      - Show all biomes
  play      - Play a biome directly
  menu      - Interactive biome picker
  levels    - Show the level sets in use
  simulate  - Run a round headless
  saves     - Manage save slots
  scores    - View finished runs
  serve     - Start SSH server for remote play

Examples:
  crossing list
  crossing play river
  crossing play space --difficulty hard
  crossing play squid --levels ./levels --watch
  crossing simulate river --ticks 600 --seed 42
  crossing serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to saves and runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom crossing.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with <biome>.yaml level overrides")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write in-game logs to this file (the TUI owns the terminal)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup validates the shared flags and hands them to the biomes.
// A tuning file that does not load is fatal rather than silently replaced.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	if _, _, err := config.LoadCrossing(flagConfig); err != nil {
		return err
	}

	crossing.SetConfigPath(flagConfig)
	crossing.SetDifficultyPreset(flagDifficulty)
	crossing.SetLevelsDir(flagLevels)
	return nil
}

// newLogger returns a stderr logger for commands that do not own the terminal.
func newLogger(prefix string) *log.Logger {
	return newLoggerTo(os.Stderr, prefix)
}

func newLoggerTo(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// tuiLogger returns the logger for full-screen commands, or nil to stay quiet.
// Callers close the returned file.
func tuiLogger(prefix string) (*log.Logger, io.Closer, error) {
	if flagLogFile == "" {
		return nil, io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLoggerTo(f, prefix), f, nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
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

// openStore opens the database, warning and returning nil when it is unavailable.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, saves and runs are disabled", "error", err)
		return nil
	}
	return store
}
