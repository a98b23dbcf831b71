package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/levels"
	"github.com/vovakirdan/biome-crossing/internal/registry"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

// noticeDuration is how long host notices stay on the bottom row.
const noticeDuration = 2 * time.Second

// LevelsChangedMsg reports that a level file was edited on disk.
type LevelsChangedMsg levels.Change

// Model is the Bubble Tea model for running one biome.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	held       holdTracker
	changes    <-chan levels.Change
	loop       uint64
	gameState  core.GameState
	notice     string
	noticeTTL  int
	standalone bool // quit the program on Back instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the finished round has been recorded
	reload     bool // level files changed; reload on the next restart
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: log.New(io.Discard),
		config: cfg,
		keys:   DefaultKeyMap(),
		held:   newHoldTracker(cfg.TickRate),
		loop:   nextLoop(),
	}
}

// WithLogger sets the logger for saves, loads and round transitions.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithLevelChanges makes the model reload its level set when ch reports an edit.
func (m Model) WithLevelChanges(ch <-chan levels.Change) Model {
	m.changes = ch
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	m.logger.Info("round started", "biome", m.game.ID(), "seed", m.config.Seed)

	return tea.Batch(tickCmd(m.config.TickRate, m.loop), waitForChange(m.changes))
}

// waitForChange blocks on the watcher channel; a closed or nil channel ends the loop.
func waitForChange(ch <-chan levels.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return LevelsChangedMsg(c)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()

	case LevelsChangedMsg:
		return m.handleLevelsChanged(levels.Change(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.saveSlot()
		return m, nil
	case key.Matches(msg, m.keys.Load):
		m.loadSlot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.gameState.GameOver || m.gameState.Won || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionRestart && m.reload && (m.gameState.GameOver || m.gameState.Won) {
		m.reloadLevels()
		return m, nil
	}
	m.held.Press(action)
	return m, nil
}

// handleResize processes window resize events.
// World coordinates do not depend on the screen, so the round keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState

	result := m.game.Step(m.held.Frame())
	m.gameState = result.State

	if result.Notice != "" {
		m.setNotice(result.Notice)
	}
	if m.gameState.Level != prev.Level && prev.Level != 0 {
		m.logger.Info("level changed", "biome", m.game.ID(), "level", m.gameState.Level)
	}
	m.recordRun()

	if m.noticeTTL > 0 {
		m.noticeTTL--
		if m.noticeTTL == 0 {
			m.notice = ""
		}
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.loop)
}

func (m Model) handleLevelsChanged(c levels.Change) (tea.Model, tea.Cmd) {
	next := waitForChange(m.changes)
	if c.ID != m.game.ID() {
		return m, next
	}
	m.logger.Info("level file changed", "biome", c.ID, "path", c.Path)
	if m.gameState.GameOver || m.gameState.Won {
		m.reloadLevels()
		return m, next
	}
	m.reload = true
	m.setNotice("Levels changed, reloading after this round")
	return m, next
}

func (m *Model) reloadLevels() {
	m.reload = false
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.held.Reset()
	m.setNotice("Levels reloaded")
}

// recordRun stores a finished round once.
func (m *Model) recordRun() {
	finished := m.gameState.GameOver || m.gameState.Won
	if !finished {
		m.runSaved = false
		return
	}
	if m.runSaved || m.gameState.Level == 0 {
		return
	}
	m.runSaved = true

	run := storage.Run{
		Biome:         m.game.ID(),
		LevelsCleared: m.gameState.Level - 1,
		Coins:         m.gameState.Score,
		Won:           m.gameState.Won,
	}
	if run.Won {
		run.LevelsCleared = m.gameState.Level
	}
	m.logger.Info("round finished", "biome", run.Biome, "levels", run.LevelsCleared, "won", run.Won)

	if m.store == nil {
		return
	}
	if _, err := m.store.RecordRun(run); err != nil {
		m.logger.Error("cannot record run", "error", err)
	}
}

func (m *Model) saveSlot() {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.store == nil {
		m.setNotice("Saving is not available")
		return
	}
	data, err := saver.SaveState()
	if err != nil {
		m.logger.Error("save failed", "biome", m.game.ID(), "error", err)
		m.setNotice("Cannot save")
		return
	}
	id, err := m.store.SaveSlot(m.game.ID(), storage.DefaultSlot, max(m.gameState.Level-1, 0), data)
	if err != nil {
		m.logger.Error("save failed", "biome", m.game.ID(), "error", err)
		m.setNotice("Cannot save")
		return
	}
	m.logger.Info("game saved", "biome", m.game.ID(), "slot", storage.DefaultSlot, "id", id)
	m.setNotice("Game saved")
}

func (m *Model) loadSlot() {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.store == nil {
		m.setNotice("Loading is not available")
		return
	}
	slot, err := m.store.LoadSlot(m.game.ID(), storage.DefaultSlot)
	if errors.Is(err, storage.ErrSlotNotFound) {
		m.setNotice("No saved game")
		return
	}
	if err != nil {
		m.logger.Error("load failed", "biome", m.game.ID(), "error", err)
		m.setNotice("Cannot load")
		return
	}
	if err := saver.LoadState(slot.Payload); err != nil {
		m.logger.Warn("save rejected", "biome", m.game.ID(), "id", slot.ID, "error", err)
		m.setNotice("Saved game does not match")
		return
	}
	m.gameState = m.game.State()
	m.held.Reset()
	m.logger.Info("game loaded", "biome", m.game.ID(), "id", slot.ID)
	m.setNotice("Game loaded")
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeTTL = int(noticeDuration * time.Duration(m.config.TickRate) / time.Second)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".crossing", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.notice != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, " "+m.notice+" ", core.ColorBrightYellow)
	}

	return RenderScreen(m.screen)
}

// GameState returns the state seen on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Notice returns the host notice currently shown.
func (m Model) Notice() string {
	return m.notice
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg)
	model.standalone = true
	for _, opt := range opts {
		model = opt(model)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// Option configures a Model started by Run.
type Option func(Model) Model

// WithLogger returns an Option that sets the model logger.
func WithLogger(l *log.Logger) Option {
	return func(m Model) Model { return m.WithLogger(l) }
}

// WithLevelChanges returns an Option that enables level hot reload.
func WithLevelChanges(ch <-chan levels.Change) Option {
	return func(m Model) Model { return m.WithLevelChanges(ch) }
}
