// Package comingsoon provides the stand-in screen for catalog entries that
// have no implementation yet.
package comingsoon

import (
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

// Game shows a notice and reports a zero, lost outcome when the player leaves.
type Game struct {
	desc     registry.Descriptor
	rep      core.Reporter
	reported bool
}

// New creates a placeholder for the given catalog entry.
func New(d registry.Descriptor) *Game {
	return &Game{desc: d}
}

// Factory adapts New to the registry fallback signature.
func Factory(d registry.Descriptor) registry.Factory {
	return func() registry.Game { return New(d) }
}

func (g *Game) ID() string    { return g.desc.ID }
func (g *Game) Title() string { return g.desc.Title }

func (g *Game) Reset(_ core.RuntimeConfig, rep core.Reporter) {
	if rep == nil {
		rep = core.NopReporter{}
	}
	g.rep = rep
	g.reported = false
	g.rep.ScoreUpdate(0)
}

func (g *Game) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.State()}
}

// Exit reports {score 0, lost} once per session.
func (g *Game) Exit() {
	if g.reported || g.rep == nil {
		return
	}
	g.reported = true
	g.rep.GameOver(core.Outcome{Score: 0, Won: false})
}

func (g *Game) State() core.GameState {
	return core.GameState{GameOver: g.reported}
}

func (g *Game) Render(dst *core.Screen) {
	y := dst.Height()/2 - 2
	dst.DrawTextCentered(y, g.desc.Icon+"  "+g.desc.Title, core.ColorAccent)
	dst.DrawTextCentered(y+2, "Coming soon", core.ColorDefault)
	if g.desc.Description != "" {
		dst.DrawTextCentered(y+3, g.desc.Description, core.ColorMuted)
	}
	dst.DrawTextCentered(y+5, "Esc to go back", core.ColorMuted)
}
