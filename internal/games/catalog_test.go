package games

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/core/coretest"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

func TestCatalogOrder(t *testing.T) {
	r := NewCatalog(config.Default())
	want := []string{
		"tic-tac-toe", "snake", "minesweeper", "tetris", "2048",
		"flappy", "billiards", "ping-pong", "sudoku", "nuts-bolts",
	}
	got := r.IDs()
	if len(got) != len(want) {
		t.Fatalf("catalog has %d entries, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestCatalogPlayableGames(t *testing.T) {
	r := NewCatalog(config.Default())
	for _, d := range r.List() {
		g, err := r.Create(d.ID)
		if d.Playable {
			if err != nil {
				t.Errorf("Create(%q) error: %v", d.ID, err)
				continue
			}
			if g.ID() != d.ID {
				t.Errorf("Create(%q) built %q", d.ID, g.ID())
			}
			continue
		}
		if !errors.Is(err, registry.ErrComingSoon) {
			t.Errorf("Create(%q) error = %v, expected ErrComingSoon", d.ID, err)
		}
	}
}

func TestPlaceholderForComingSoonAndUnknown(t *testing.T) {
	r := NewCatalog(config.Default())

	for _, id := range []string{"sudoku", "pinball"} {
		f, ok := r.Resolve(id)
		if ok {
			t.Errorf("Resolve(%q) reported a real implementation", id)
		}
		if f == nil {
			t.Fatalf("Resolve(%q) returned no placeholder", id)
		}
		g := f()
		if g.ID() != id {
			t.Errorf("placeholder id = %q, expected %q", g.ID(), id)
		}

		rep := coretest.NewReporter(t)
		g.Reset(core.DefaultConfig(), rep)
		g.(registry.Exiter).Exit()
		if out := rep.AssertFinished(); out.Score != 0 || out.Won {
			t.Errorf("placeholder outcome = %+v", out)
		}
	}

	if _, err := r.Create("pinball"); !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("Create(unknown) error = %v", err)
	}
}
