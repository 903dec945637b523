package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/games"
	"github.com/vovakirdan/arcade-hub/internal/games/comingsoon"
	"github.com/vovakirdan/arcade-hub/internal/games/tictactoe"
	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func quiet() *log.Logger { return log.New(io.Discard) }

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(store.WithLogger(quiet()))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(st.Close)
	return st
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	return cfg
}

func noDelayTicTacToe() registry.Game {
	return tictactoe.New(config.TicTacToeConfig{AIDelayMS: 0, WinPoints: 1})
}

func step(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tick(m GameModel) TickMsg { return TickMsg{Gen: m.Generation()} }

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	cases := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("w"), core.ActionUp},
		{keyDown, core.ActionDown},
		{runes("a"), core.ActionLeft},
		{keyRight, core.ActionRight},
		{keyEnter, core.ActionConfirm},
		{runes("f"), core.ActionFlag},
		{runes("p"), core.ActionPause},
		{runes("r"), core.ActionRestart},
		{keyEsc, core.ActionBack},
		{runes("z"), core.ActionNone},
	}
	for _, tc := range cases {
		if got, _ := km.MapKey(tc.msg); got != tc.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
	if _, quit := km.MapKey(runes("q")); !quit {
		t.Error("q should quit")
	}
	if km.MapKeyToMenuAction(keyTab) != MenuActionStats || km.MapKeyToMenuAction(runes("t")) != MenuActionTheme {
		t.Error("menu bindings for stats/theme")
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	m := NewGameModel(noDelayTicTacToe(), nil, testConfig(), quiet())
	if m.Init() == nil {
		t.Fatal("Init should arm the first tick")
	}

	_, cmd := step(t, m, TickMsg{Gen: m.Generation() + 1000})
	if cmd != nil {
		t.Error("a tick from another generation must not re-arm")
	}
	_, cmd = step(t, m, tick(m))
	if cmd == nil {
		t.Error("a live tick should re-arm")
	}
}

func TestGameInputAppliedOnTick(t *testing.T) {
	g := noDelayTicTacToe()
	m := NewGameModel(g, nil, testConfig(), quiet())

	m, _ = step(t, m, keyEnter)
	if g.(*tictactoe.Game).Board()[4] != tictactoe.Empty {
		t.Fatal("input must wait for the tick")
	}
	m, _ = step(t, m, tick(m))
	if g.(*tictactoe.Game).Board()[4] != tictactoe.X {
		t.Errorf("center = %v after tick", g.(*tictactoe.Game).Board()[4])
	}
}

func TestRestartStartsNewSession(t *testing.T) {
	st := testStore(t)
	g := tictactoe.New(config.TicTacToeConfig{AIDelayMS: 0, WinPoints: 1})
	m := NewGameModel(g, st, testConfig(), quiet())

	// Take the first free cell each turn until the round is over.
	for i := 0; i < 9 && !m.gameState.GameOver; i++ {
		for c, mark := range g.Board() {
			if mark == tictactoe.Empty {
				g.Place(c)
				break
			}
		}
		m, _ = step(t, m, tick(m))
	}
	if !m.gameState.GameOver {
		t.Fatal("round did not finish")
	}
	if n := len(st.Sessions("", 0)); n != 1 {
		t.Fatalf("%d sessions saved, expected 1", n)
	}

	oldGen := m.Generation()
	m, cmd := step(t, m, runes("r"))
	if cmd == nil || m.Generation() == oldGen {
		t.Fatal("restart should arm a new generation")
	}
	if m.gameState.GameOver || m.Recorder().Reported() {
		t.Error("restart should begin a fresh session")
	}
	if _, cmd := step(t, m, TickMsg{Gen: oldGen}); cmd != nil {
		t.Error("ticks of the previous session must be dropped")
	}
}

func TestBackCallsExitAndStopsTicks(t *testing.T) {
	st := testStore(t)
	d := registry.Descriptor{ID: "sudoku", Title: "Sudoku"}
	m := NewGameModel(comingsoon.New(d), st, testConfig(), quiet())
	live := tick(m)

	m, _ = step(t, m, keyEsc)
	if !m.BackToMenu() {
		t.Fatal("esc should go back to the menu")
	}
	if _, cmd := step(t, m, live); cmd != nil {
		t.Error("the loop must stop after leaving")
	}
	sessions := st.Sessions("sudoku", 0)
	if len(sessions) != 1 || sessions[0].Metrics.Score != 0 || sessions[0].Metrics.Won {
		t.Errorf("placeholder sessions = %+v", sessions)
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := noDelayTicTacToe()
	m := NewGameModel(g, nil, testConfig(), quiet())
	m, _ = step(t, m, keyEnter)
	m, _ = step(t, m, tick(m))
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.(*tictactoe.Game).Board()[4] != tictactoe.X {
		t.Error("resize must not reset the game")
	}
	if !strings.Contains(m.View(), "Tic") {
		t.Error("view should render the game")
	}
}

func TestMenuSettings(t *testing.T) {
	st := testStore(t)
	reg := games.NewCatalog(config.Default())
	m := NewMenuModel(reg, st, testConfig(), quiet())

	next, _ := m.Update(runes("t"))
	m = next.(MenuModel)
	if st.Settings().Theme != core.ThemeDark {
		t.Error("t should toggle the theme")
	}
	for range 8 {
		next, _ = m.Update(runes("+"))
		m = next.(MenuModel)
	}
	if st.Settings().Volume != 1 {
		t.Errorf("volume = %v, expected 1", st.Settings().Volume)
	}
	for range 3 {
		next, _ = m.Update(runes("-"))
		m = next.(MenuModel)
	}
	if v := st.Settings().Volume; v < 0.69 || v > 0.71 {
		t.Errorf("volume = %v, expected 0.7", v)
	}
	if !strings.Contains(m.View(), "Volume: 70%") {
		t.Error("menu should show the volume")
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	st := testStore(t)
	st.AddSession("snake", core.Outcome{Score: 120})
	reg := games.NewCatalog(config.Default())
	view := NewMenuModel(reg, st, testConfig(), quiet()).View()

	for _, want := range []string{"best 120", "coming soon", "Minesweeper"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestSessionModelFlow(t *testing.T) {
	st := testStore(t)
	reg := games.NewCatalog(config.Default())
	var m tea.Model = NewSessionModel(reg, st, testConfig(), "tester", quiet())

	m, _ = m.Update(keyTab)
	if m.(SessionModel).screen != screenStats {
		t.Fatal("tab should open stats")
	}
	m, _ = m.Update(keyEsc)
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("esc should return to the menu")
	}

	// Fourth entry is a placeholder.
	for range 3 {
		m, _ = m.Update(keyDown)
	}
	m, cmd := m.Update(keyEnter)
	if m.(SessionModel).screen != screenGame || cmd == nil {
		t.Fatal("enter should start a game")
	}
	if !strings.Contains(m.View(), "Coming soon") {
		t.Error("placeholder screen expected")
	}

	m, _ = m.Update(keyEsc)
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("esc should leave the game")
	}
	if n := len(st.Sessions("tetris", 0)); n != 1 {
		t.Errorf("%d tetris sessions, expected 1", n)
	}
	if m.(SessionModel).menu.Cursor() != 3 {
		t.Error("menu should keep its cursor")
	}

	m, cmd = m.Update(runes("q"))
	if !m.(SessionModel).quitting || cmd == nil {
		t.Error("q should quit")
	}
}

func TestSessionReleasesSubscriptionWhenContextEnds(t *testing.T) {
	st := testStore(t)
	reg := games.NewCatalog(config.Default())

	m := NewSessionModel(reg, st, testConfig(), "dropped", quiet())
	if st.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, expected 1", st.Subscribers())
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.CloseWhenDone(ctx)
	cancel()

	select {
	case <-m.sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("subscription still open after the session context ended")
	}
	if st.Subscribers() != 0 {
		t.Errorf("subscribers = %d after disconnect, expected 0", st.Subscribers())
	}

	// Later transitions must not reach the dead session.
	if _, err := st.AddSession("snake", core.Outcome{Score: 3}); err != nil {
		t.Fatal(err)
	}
	if n := len(m.sub.Updates()); n != 0 {
		t.Errorf("%d snapshots buffered for a closed session", n)
	}
}

func TestSessionQuitReleasesSubscription(t *testing.T) {
	st := testStore(t)
	reg := games.NewCatalog(config.Default())

	var m tea.Model = NewSessionModel(reg, st, testConfig(), "tester", quiet())
	m.(SessionModel).CloseWhenDone(context.Background())
	m, _ = m.Update(runes("q"))
	if st.Subscribers() != 0 {
		t.Errorf("subscribers = %d after quit, expected 0", st.Subscribers())
	}
	m.(SessionModel).Close()
}

func TestScoreboardListsStats(t *testing.T) {
	st := testStore(t)
	st.AddSession("minesweeper", core.Outcome{Score: 150, Won: true, TimeSpentSec: 90})
	st.AddSession("minesweeper", core.Outcome{Score: 0, TimeSpentSec: 30})
	reg := games.NewCatalog(config.Default())

	sb := NewScoreboardModel(reg, st, 100, 40)
	if sb.SelectedGame() != "minesweeper" {
		t.Errorf("most played game should be first, got %q", sb.SelectedGame())
	}
	view := sb.View()
	if !strings.Contains(view, "Minesweeper") || !strings.Contains(view, "2 min") {
		t.Errorf("stats view:\n%s", view)
	}

	next, _ := sb.Update(keyEnter)
	sb = next.(ScoreboardModel)
	if !strings.Contains(sb.View(), "Recent sessions") {
		t.Error("enter should show the history")
	}
	next, _ = sb.Update(keyEsc)
	sb = next.(ScoreboardModel)
	if sb.IsGoingBack() {
		t.Error("first esc closes the history only")
	}
}

func TestRenderScreenSkipsContinuationCells(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawText(0, 0, "🐍ab")
	out := RenderScreen(s, core.ThemeLight)
	if strings.ContainsRune(out, 0) {
		t.Error("continuation cells must not be written")
	}
	if !strings.Contains(out, "🐍ab") {
		t.Errorf("rendered %q", out)
	}
}
