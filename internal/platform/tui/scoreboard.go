package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/biome-crossing/internal/registry"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

const (
	statsPanelWidth  = 24 // width of the biome totals panel
	minWidthForPanel = 80 // narrower terminals drop the panel
	maxRuns          = 100
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll    key.Binding
	NextBiome key.Binding
	PrevBiome key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.PrevBiome, k.NextBiome, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "k", "down", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		NextBiome: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next biome"),
		),
		PrevBiome: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev biome"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	biomes    []registry.GameInfo
	cursor    int // selected biome
	store     *storage.Store
	runs      []storage.Run
	stats     *storage.BiomeStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // back to the menu rather than quit
	showPanel bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		biomes:    registry.List(),
		store:     store,
		keys:      keys,
		help:      h,
		width:     width,
		height:    height,
		showPanel: width >= minWidthForPanel,
	}

	// Initialize table
	m.table = m.createTable()

	if len(m.biomes) > 0 {
		m.loadRuns(m.biomes[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Cleared", Width: 8},
		{Title: "Coins", Width: 6},
		{Title: "Result", Width: 8},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showPanel {
		tableWidth -= statsPanelWidth + 4
	}

	// Columns plus cell padding take 49; the date column gets the rest, up to 8 more
	if spare := tableWidth - 49; spare > 0 {
		columns[4].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-10), // Leave room for header, totals, help and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the best runs and totals for the given biome.
func (m *ScoreboardModel) loadRuns(biome string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(biome, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetBiomeStats(biome); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := "lost"
		if r.Won {
			result = "crossed"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.LevelsCleared),
			fmt.Sprintf("%d", r.Coins),
			result,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextBiome):
			m.selectBiome(m.cursor + 1)
			return m, nil

		case key.Matches(msg, m.keys.PrevBiome):
			m.selectBiome(m.cursor - 1)
			return m, nil

		case key.Matches(msg, m.keys.Scroll):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showPanel = m.width >= minWidthForPanel
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectBiome moves the cursor to biome i, wrapping at both ends.
func (m *ScoreboardModel) selectBiome(i int) {
	n := len(m.biomes)
	if n == 0 {
		return
	}
	m.cursor = ((i % n) + n) % n
	m.loadRuns(m.biomes[m.cursor].ID)
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "BEST RUNS"
	if len(m.biomes) > 0 {
		title = "BEST RUNS - " + m.biomes[m.cursor].Title
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := boardBoxStyle.Render(m.renderRuns())
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.renderPanel())
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs lists the biomes with the selected one highlighted, falling back
// to "< title >" when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.biomes) == 0 {
		return ""
	}
	tabs := make([]string, len(m.biomes))
	for i, g := range m.biomes {
		if i == m.cursor {
			tabs[i] = boardTabStyle.Render(g.ID)
		} else {
			tabs[i] = boardDimStyle.Render(" " + g.ID + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.biomes[m.cursor].ID)
	}
	return line
}

// renderRuns renders the run table, or a hint when the biome has none.
func (m ScoreboardModel) renderRuns() string {
	if len(m.runs) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nFinish a round to get on the board!")
	}
	return m.table.View()
}

// renderPanel renders the lifetime totals of the selected biome.
func (m ScoreboardModel) renderPanel() string {
	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("Totals"))
	b.WriteString("\n\n")

	if m.stats == nil || m.stats.Runs == 0 {
		b.WriteString(boardDimStyle.Render("never played"))
		return boardBoxStyle.Width(statsPanelWidth).Render(b.String())
	}

	rows := [][2]string{
		{"Runs", fmt.Sprintf("%d", m.stats.Runs)},
		{"Wins", fmt.Sprintf("%d", m.stats.Wins)},
		{"Best", fmt.Sprintf("%d cleared", m.stats.BestLevels)},
		{"Coins", fmt.Sprintf("%d", m.stats.TotalCoins)},
		{"Last", m.stats.LastPlayed.Format("Jan 02 15:04")},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-6s %s\n", r[0], r[1])
	}
	return boardBoxStyle.Width(statsPanelWidth).Render(strings.TrimRight(b.String(), "\n"))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
