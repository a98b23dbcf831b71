package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/registry"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

// sessionScreen is the screen an SSH session currently shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
	screenGone
)

// SessionModel drives one SSH connection. Each sub-model believes it owns
// the program and ends itself with tea.Quit; the session swallows those and
// switches screens, quitting only when the player asks to.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger
	screen sessionScreen
	menu   MenuModel
	scores ScoreboardModel
	game   Model
}

// NewSessionModel creates a session that starts on the biome menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update forwards msg to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = ws.Width
		m.config.ScreenH = ws.Height
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	}
	return m, nil
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Error("cannot create game", "biome", id, "error", err)
		return m.toMenu()
	}

	cfg := m.menu.Config()
	cfg.Seed = time.Now().UnixNano()
	m.config = cfg
	m.game = NewModel(game, m.store, cfg).WithLogger(m.logger)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	switch {
	case m.game.BackToMenu():
		// Rebuilt so the records include the round just played
		return m.toMenu()
	case m.game.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.screen = screenGone
	return m, tea.Quit
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch m.screen {
	case screenMenu:
		return m.menu.View()
	case screenScores:
		return m.scores.View()
	case screenGame:
		return m.game.View()
	}
	return ""
}
