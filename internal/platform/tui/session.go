package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

// StoreUpdateMsg carries a store snapshot published after a transition,
// possibly made by another session sharing the store.
type StoreUpdateMsg struct {
	State store.State
}

// waitForStore blocks until the subscription delivers a snapshot.
// It returns nil once the subscription is closed.
func waitForStore(sub *store.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case st := <-sub.Updates():
			return StoreUpdateMsg{State: st}
		case <-sub.Done():
			return nil
		}
	}
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenStats
)

// SessionModel manages the full arcade session flow: menu -> game or
// stats -> menu. It is the top-level model for local and SSH sessions.
type SessionModel struct {
	registry   *registry.Registry
	store      *store.Store
	sub        *store.Subscription
	config     core.RuntimeConfig
	logger     *log.Logger
	username   string
	screen     screen
	menu       MenuModel
	gameModel  *GameModel
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model. st may be nil.
func NewSessionModel(reg *registry.Registry, st *store.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	m := SessionModel{
		registry: reg,
		store:    st,
		config:   cfg,
		logger:   logger.With("user", username),
		username: username,
		menu:     NewMenuModel(reg, st, cfg, logger),
	}
	if st != nil {
		m.sub = st.Subscribe(4)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), waitForStore(m.sub))
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		// The menu keeps the latest size for the next game or stats screen.
		if m.screen != screenMenu {
			newMenu, _ := m.menu.Update(msg)
			m.menu = newMenu.(MenuModel)
		}
	case StoreUpdateMsg:
		var cmd tea.Cmd
		if m.screen == screenStats && m.scoreboard != nil {
			var next tea.Model
			next, cmd = m.scoreboard.Update(msg)
			sb := next.(ScoreboardModel)
			m.scoreboard = &sb
		}
		return m, tea.Batch(cmd, waitForStore(m.sub))
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	m.menu = newMenu.(MenuModel)

	if m.menu.IsQuitting() {
		return m.quit()
	}

	if m.menu.WantsScoreboard() {
		cfg := m.menu.Config()
		sb := NewScoreboardModel(m.registry, m.store, cfg.ScreenW, cfg.ScreenH)
		m.scoreboard = &sb
		m.screen = screenStats
		m.menu = m.freshMenu()
		return m, sb.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		factory, ok := m.registry.Resolve(selected.ID)
		if factory == nil {
			m.logger.Error("no factory for game", "game", selected.ID)
			m.menu = m.freshMenu()
			return m, nil
		}
		if !ok {
			m.logger.Debug("opening placeholder", "game", selected.ID)
		}

		m.config = m.menu.Config()
		gm := NewGameModel(factory(), m.store, m.config, m.logger)
		m.gameModel = &gm
		m.screen = screenGame
		m.menu = m.freshMenu()
		return m, gm.Init()
	}

	return m, cmd
}

// freshMenu rebuilds the menu keeping the cursor and size.
func (m SessionModel) freshMenu() MenuModel {
	cfg := m.menu.Config()
	return NewMenuModel(m.registry, m.store, cfg, m.logger).WithCursor(m.menu.Cursor())
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	gm := newModel.(GameModel)
	m.gameModel = &gm

	if gm.IsQuitting() {
		return m.quit()
	}
	if gm.BackToMenu() {
		m.gameModel = nil
		m.screen = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateStats handles updates when the stats screen is open.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb := next.(ScoreboardModel)
	m.scoreboard = &sb

	if sb.IsQuitting() {
		return m.quit()
	}
	if sb.IsGoingBack() {
		m.scoreboard = nil
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// Close releases the store subscription. Safe to call more than once.
func (m SessionModel) Close() {
	if m.sub != nil {
		m.sub.Close()
	}
}

// CloseWhenDone releases the store subscription once ctx ends. SSH
// sessions use it because a dropped connection never reaches quit.
func (m SessionModel) CloseWhenDone(ctx context.Context) {
	if m.sub == nil {
		return
	}
	go func() {
		select {
		case <-ctx.Done():
			m.sub.Close()
		case <-m.sub.Done():
		}
	}()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenStats:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven arcade in the local terminal.
func RunSession(reg *registry.Registry, st *store.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewSessionModel(reg, st, cfg, "local", logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	model.Close()
	return err
}
