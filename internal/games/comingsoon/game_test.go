package comingsoon

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/core/coretest"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

var tetris = registry.Descriptor{ID: "tetris", Title: "Tetris", Icon: "🧱"}

func TestExitReportsZeroLossOnce(t *testing.T) {
	g := New(tetris)
	rep := coretest.NewReporter(t)
	g.Reset(core.DefaultConfig(), rep)

	if rep.LastScore() != 0 {
		t.Errorf("Reset should report score 0, got %d", rep.LastScore())
	}
	if rep.Finished() {
		t.Fatal("no outcome before Exit")
	}

	g.Exit()
	g.Exit()

	out := rep.AssertFinished()
	if out.Score != 0 || out.Won {
		t.Errorf("outcome = %+v, expected zero loss", out)
	}
	if !g.State().GameOver {
		t.Error("State should be game over after Exit")
	}
}

func TestResetAllowsAnotherReport(t *testing.T) {
	g := New(tetris)
	first := coretest.NewReporter(t)
	g.Reset(core.DefaultConfig(), first)
	g.Exit()

	second := coretest.NewReporter(t)
	g.Reset(core.DefaultConfig(), second)
	g.Exit()
	second.AssertFinished()
	first.AssertFinished()
}

func TestExitBeforeResetIsIgnored(t *testing.T) {
	g := New(tetris)
	g.Exit()
	if g.State().GameOver {
		t.Error("Exit without a session should do nothing")
	}
}

func TestRenderShowsNotice(t *testing.T) {
	g := New(tetris)
	g.Reset(core.DefaultConfig(), nil)
	g.Step(core.Frame(core.ActionConfirm))

	s := core.NewScreen(60, 20)
	g.Render(s)
	out := s.String()
	for _, want := range []string{"Tetris", "Coming soon"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestFactoryUsesDescriptor(t *testing.T) {
	g := Factory(tetris)()
	if g.ID() != "tetris" || g.Title() != "Tetris" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
	if _, ok := g.(registry.Exiter); !ok {
		t.Error("placeholder must implement Exiter")
	}
}
