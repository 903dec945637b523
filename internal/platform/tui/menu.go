package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

const volumeStep = 0.1

// MenuModel is the Bubble Tea model for the game picker. It also hosts
// the theme and volume controls.
type MenuModel struct {
	items          []registry.Descriptor
	cursor         int
	width          int
	height         int
	store          *store.Store
	logger         *log.Logger
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	status         string
	quitting       bool
	selected       *registry.Descriptor // Set when user selects a game
	openScoreboard bool                 // True if user pressed Tab for stats
}

// NewMenuModel creates a new menu model over the catalog of reg.
func NewMenuModel(reg *registry.Registry, st *store.Store, cfg core.RuntimeConfig, logger *log.Logger) MenuModel {
	if logger == nil {
		logger = log.Default()
	}
	return MenuModel{
		items:     reg.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     st,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	action := m.keyMapper.MapKeyToMenuAction(msg)
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionStats:
		m.openScoreboard = true

	case MenuActionTheme:
		if m.store == nil {
			break
		}
		if _, err := m.store.ToggleTheme(); err != nil {
			m.fail("theme not saved", err)
		}

	case MenuActionVolumeUp, MenuActionVolumeDown:
		if m.store == nil {
			break
		}
		delta := volumeStep
		if action == MenuActionVolumeDown {
			delta = -volumeStep
		}
		// Round to the step so repeated presses land on 0 and 1 exactly.
		v := float64(int((m.store.Settings().Volume+delta)*10+0.5)) / 10
		if err := m.store.SetVolume(v); err != nil {
			m.fail("volume not saved", err)
		}
	}

	return m, nil
}

func (m *MenuModel) fail(what string, err error) {
	m.status = what
	m.logger.Error(what, "error", err)
}

func (m MenuModel) settings() store.Settings {
	if m.store == nil {
		return store.DefaultSettings()
	}
	return m.store.Settings()
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	pal := PaletteFor(m.settings().Theme)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(pal.Title.Render(centerText("  A R C A D E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(pal.Muted.Render(centerText("Select a game", m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s  %-14s %s", cursor, item.Icon, item.Title, m.bestLabel(item))
		if i == m.cursor {
			b.WriteString(centerText(pal.Selected.Render(line), m.width))
		} else if !item.Playable {
			b.WriteString(centerText(pal.Muted.Render(line), m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(pal.Muted.Render(centerText(m.items[m.cursor].Description, m.width)))
		b.WriteString("\n")
	}

	set := m.settings()
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Theme: %s   Volume: %d%%", set.Theme, int(set.Volume*100+0.5)), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(pal.Error.Render(centerText(m.status, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Stats  |  T: Theme  |  +/-: Volume  |  Q: Quit"
	b.WriteString(pal.Muted.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// bestLabel renders the stored best of a game, or its availability.
func (m MenuModel) bestLabel(d registry.Descriptor) string {
	if !d.Playable {
		return "coming soon"
	}
	if m.store == nil {
		return ""
	}
	best, ok := m.store.HighScore(d.ID)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("best %d", best)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *registry.Descriptor {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the stats screen.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// WithCursor returns m with the highlight moved to i, if valid.
func (m MenuModel) WithCursor(i int) MenuModel {
	if i >= 0 && i < len(m.items) {
		m.cursor = i
	}
	return m
}
