package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/session"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

// GameModel runs one game: it feeds key input to the simulation on every
// tick, records sessions through a Recorder and renders the screen buffer.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *store.Store
	recorder   *session.Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	fixedSeed  bool
	gen        int64
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game and starts its first play session.
// st may be nil, in which case sessions are not saved.
func NewGameModel(game registry.Game, st *store.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.Default()
	}
	var sink session.Sink
	if st != nil {
		sink = st
	}
	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      st,
		recorder:   session.NewRecorder(game.ID(), sink, session.WithLogger(logger)),
		logger:     logger,
		config:     cfg,
		fixedSeed:  cfg.Seed != 0,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	m.begin()
	return m
}

// begin starts a fresh play session with a new tick generation.
func (m *GameModel) begin() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	if m.store != nil {
		m.config.Settings = m.store.Settings().UserSettings()
	}
	m.gen = nextGeneration()
	m.recorder.Begin()
	m.game.Reset(m.config, m.recorder)
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.logger.Debug("play session started", "game", m.game.ID(), "seed", m.config.Seed, "gen", m.gen)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.leave()
		m.backToMenu = true
		return m, nil
	case action == core.ActionRestart && m.gameState.GameOver:
		m.begin()
		return m, tickCmd(m.config.TickRate, m.gen)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// leave ends the live session and stops its tick loop.
func (m *GameModel) leave() {
	if ex, ok := m.game.(registry.Exiter); ok {
		ex.Exit()
	}
	m.gen = 0
}

// handleTick processes simulation ticks. Ticks from another generation are
// dropped without re-arming.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.gen == 0 {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if err := m.recorder.Err(); err != nil && m.gameState.GameOver {
		m.logger.Warn("session not saved", "game", m.game.ID(), "error", err)
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.config.Settings.Theme)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Recorder exposes the session recorder of the running game.
func (m GameModel) Recorder() *session.Recorder {
	return m.recorder
}

// Generation returns the live tick generation, 0 once the game was left.
func (m GameModel) Generation() int64 {
	return m.gen
}

// Run starts a Bubble Tea program that plays a single game.
func Run(game registry.Game, st *store.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewGameModel(game, st, cfg, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
