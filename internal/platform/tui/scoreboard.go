package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

const recentSessions = 20

// ScoreboardKeyMap defines the key bindings for the stats screen.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Details key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Details, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Details},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows per-game statistics, most played first, and the
// recent history of the highlighted game.
type ScoreboardModel struct {
	catalog     []registry.Descriptor
	store       *store.Store
	stats       []store.GameStats
	table       table.Model
	history     table.Model
	showHistory bool
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates a stats screen over the catalog of reg.
func NewScoreboardModel(reg *registry.Registry, st *store.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		catalog: reg.List(),
		store:   st,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table, m.history = m.createTables()
	m.reload()
	return m
}

func (m *ScoreboardModel) tableStyles() table.Styles {
	pal := PaletteFor(m.settings().Theme)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(pal.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = pal.Selected
	return s
}

func (m *ScoreboardModel) createTables() (table.Model, table.Model) {
	rows := max(3, m.height/2-6)

	statsTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Game", Width: 18},
			{Title: "Plays", Width: 7},
			{Title: "Wins", Width: 6},
			{Title: "Best", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Last played", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(rows),
	)
	statsTable.SetStyles(m.tableStyles())

	historyTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 14},
			{Title: "Score", Width: 8},
			{Title: "Result", Width: 8},
			{Title: "Time (s)", Width: 9},
		}),
		table.WithHeight(rows),
	)
	historyTable.SetStyles(m.tableStyles())
	return statsTable, historyTable
}

func (m ScoreboardModel) settings() store.Settings {
	if m.store == nil {
		return store.DefaultSettings()
	}
	return m.store.Settings()
}

// reload pulls fresh stats from the store.
func (m *ScoreboardModel) reload() {
	if m.store == nil {
		m.stats = nil
		m.table.SetRows(nil)
		return
	}
	ids := make([]string, len(m.catalog))
	for i, d := range m.catalog {
		ids[i] = d.ID
	}
	m.stats = m.store.Stats(ids)

	rows := make([]table.Row, len(m.stats))
	for i, s := range m.stats {
		rows[i] = table.Row{
			m.title(s.GameID),
			fmt.Sprintf("%d", s.Plays),
			fmt.Sprintf("%d", s.Wins),
			fmt.Sprintf("%d", s.Best),
			fmt.Sprintf("%d min", s.TotalMinutes()),
			formatMillis(s.LastPlayed),
		}
	}
	m.table.SetRows(rows)
	m.loadHistory()
}

func (m *ScoreboardModel) loadHistory() {
	gameID := m.SelectedGame()
	if m.store == nil || gameID == "" {
		m.history.SetRows(nil)
		return
	}
	sessions := m.store.Sessions(gameID, recentSessions)
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		result := "loss"
		if s.Metrics.Won {
			result = "win"
		}
		rows[i] = table.Row{
			formatMillis(s.Timestamp),
			fmt.Sprintf("%d", s.Metrics.Score),
			result,
			fmt.Sprintf("%.1f", s.Metrics.TimeSpentSec),
		}
	}
	m.history.SetRows(rows)
	m.history.GotoTop()
}

func (m ScoreboardModel) title(id string) string {
	for _, d := range m.catalog {
		if d.ID == id {
			return d.Icon + " " + d.Title
		}
	}
	return id
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(ms).Format("Jan 02 15:04")
}

// SelectedGame returns the id of the highlighted row.
func (m ScoreboardModel) SelectedGame() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.stats) {
		return ""
	}
	return m.stats[i].GameID
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
			if m.showHistory {
				m.showHistory = false
				return m, nil
			}
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Details):
			m.showHistory = !m.showHistory
			m.loadHistory()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if m.showHistory {
				m.history, cmd = m.history.Update(msg)
				return m, cmd
			}
			m.table, cmd = m.table.Update(msg)
			m.loadHistory()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table, m.history = m.createTables()
		m.reload()
		m.table.SetCursor(cursor)
		m.loadHistory()
		m.help.Width = msg.Width
		return m, nil

	case StoreUpdateMsg:
		cursor := m.table.Cursor()
		m.reload()
		m.table.SetCursor(cursor)
		m.loadHistory()
		return m, nil
	}

	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	pal := PaletteFor(m.settings().Theme)

	var b strings.Builder
	b.WriteString(pal.Title.Render(centerText("STATS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Border).
		Padding(0, 1)

	switch {
	case len(m.stats) == 0:
		empty := pal.Muted.Italic(true).Padding(2, 4).
			Render("No games played yet.\nPlay a game to set a high score!")
		b.WriteString(centerBlock(boxStyle.Render(empty), m.width))
	case m.showHistory:
		b.WriteString(centerText("Recent sessions: "+m.title(m.SelectedGame()), m.width))
		b.WriteString("\n")
		if len(m.history.Rows()) == 0 {
			b.WriteString(centerBlock(boxStyle.Render(pal.Muted.Render("Not played yet.")), m.width))
		} else {
			b.WriteString(centerBlock(boxStyle.Render(m.history.View()), m.width))
		}
	default:
		b.WriteString(centerBlock(boxStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(pal.Muted.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
