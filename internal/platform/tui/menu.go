package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/registry"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

const menuTitle = "B I O M E   C R O S S I N G"

var (
	menuTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuItemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	menuNoteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable biome in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
	Record  string // best result so far, empty when never played
}

// menuChoice is what ended the menu.
type menuChoice int

const (
	choiceNone menuChoice = iota
	choiceGame
	choiceScoreboard
	choiceQuit
)

// MenuModel is the Bubble Tea model for the biome picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model
	choice menuChoice
}

// NewMenuModel lists the registered biomes with their best records.
// store may be nil, in which case no records are shown.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.BiomeStats
	if store != nil {
		stats, _ = store.GetAllBiomeStats() // records are decoration only
	}

	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Summary: g.Summary}
		if st := stats[g.ID]; st != nil && st.Runs > 0 {
			items[i].Record = fmt.Sprintf("best %d cleared, %d wins", st.BestLevels, st.Wins)
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and records the choice. Any choice ends the
// program with tea.Quit; hosts that embed the menu read the choice instead.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
		case MenuActionSelect:
			if len(m.items) > 0 {
				m.choice = choiceGame
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.choice = choiceScoreboard
			return m, tea.Quit
		case MenuActionBack, MenuActionQuit:
			m.choice = choiceQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render(centerText(menuTitle, w)),
		"",
		centerText("Pick a world to cross", w),
		"",
	}
	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, centerText(menuCurrentStyle.Render(item.Title), w))
			if item.Summary != "" {
				lines = append(lines, centerText(item.Summary, w))
			}
		} else {
			lines = append(lines, centerText(menuItemStyle.Render(item.Title), w))
		}
		if item.Record != "" {
			lines = append(lines, menuNoteStyle.Render(centerText(item.Record, w)))
		}
		lines = append(lines, "")
	}
	lines = append(lines, centerText(m.help.View(m.keys), w))

	return strings.Join(lines, "\n") + "\n"
}

// Selected returns the chosen biome, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != choiceGame {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.choice == choiceQuit
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.choice == choiceScoreboard
}

// Config returns the runtime config with the latest window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it within width cells.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu full screen until the user picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch m.choice {
	case choiceGame:
		result.GameID = m.items[m.cursor].GameID
	case choiceScoreboard:
		result.WantsScoreboard = true
	default:
		result.Quit = true
	}
	return result, nil
}
