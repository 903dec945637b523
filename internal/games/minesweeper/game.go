// Package minesweeper implements Minesweeper with a guaranteed-safe first click.
package minesweeper

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
)

// ID is the catalog id.
const ID = "minesweeper"

// Status is the phase of a round.
type Status int

const (
	Idle Status = iota // no cell revealed yet; mines not placed
	Playing
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Game is one Minesweeper round.
type Game struct {
	cfg      config.MinesweeperConfig
	rng      *rand.Rand
	rep      core.Reporter
	board    *Board
	status   Status
	cursor   core.Point
	flags    int
	opened   int
	exploded core.Point
	score    int
	tickRate int
	ticks    int // ticks since the first reveal
}

// New creates a game with the given board settings.
func New(cfg config.MinesweeperConfig) *Game {
	return &Game{cfg: cfg}
}

func (g *Game) ID() string    { return ID }
func (g *Game) Title() string { return "Minesweeper" }

// Reset clears the board. Mines are placed on the first reveal.
func (g *Game) Reset(cfg core.RuntimeConfig, rep core.Reporter) {
	if rep == nil {
		rep = core.NopReporter{}
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.rep = rep
	g.board = NewBoard(g.cfg.Rows, g.cfg.Cols)
	g.status = Idle
	g.cursor = core.Point{X: g.cfg.Cols / 2, Y: g.cfg.Rows / 2}
	g.flags = 0
	g.opened = 0
	g.score = 0
	g.tickRate = cfg.TickRate
	g.ticks = 0
	g.rep.ScoreUpdate(0)
}

// Step maps cursor, reveal and flag actions.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.status == Playing {
		g.ticks++
	}

	d := core.Point{}
	switch {
	case in.Has(core.ActionUp):
		d.Y = -1
	case in.Has(core.ActionDown):
		d.Y = 1
	case in.Has(core.ActionLeft):
		d.X = -1
	case in.Has(core.ActionRight):
		d.X = 1
	}
	g.cursor = core.Point{
		X: core.Clamp(g.cursor.X+d.X, 0, g.cfg.Cols-1),
		Y: core.Clamp(g.cursor.Y+d.Y, 0, g.cfg.Rows-1),
	}

	switch {
	case in.Has(core.ActionConfirm):
		g.Reveal(g.cursor)
	case in.Has(core.ActionFlag):
		g.ToggleFlag(g.cursor)
	}
	return core.StepResult{State: g.State()}
}

// Reveal opens the cell at p. Flagged and already open cells are ignored,
// so a flagged first click does not place mines.
func (g *Game) Reveal(p core.Point) {
	if g.status == Won || g.status == Lost || !g.board.Contains(p) {
		return
	}
	c := g.board.At(p)
	if c.Open || c.Flagged {
		return
	}

	if g.status == Idle {
		g.board.PlaceMines(g.cfg.Mines, p, g.rng)
		g.status = Playing
	}

	if c.Mine {
		c.Open = true
		g.exploded = p
		g.board.OpenMines()
		g.status = Lost
		g.finish(false)
		return
	}

	g.opened += g.board.FloodOpen(p)
	if g.opened == g.cfg.Rows*g.cfg.Cols-g.cfg.Mines {
		g.status = Won
		g.score = g.cfg.Mines * g.cfg.PointsPerMine
		g.rep.ScoreUpdate(g.score)
		g.finish(true)
	}
}

// ToggleFlag flips the flag on a closed cell while the round is live.
func (g *Game) ToggleFlag(p core.Point) {
	if (g.status != Idle && g.status != Playing) || !g.board.Contains(p) {
		return
	}
	c := g.board.At(p)
	if c.Open {
		return
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		g.flags++
	} else {
		g.flags--
	}
}

func (g *Game) finish(won bool) {
	g.rep.GameOver(core.Outcome{
		Score: g.score,
		Won:   won,
		CustomData: map[string]any{
			"mines":       g.cfg.Mines,
			"flagsPlaced": g.flags,
		},
	})
}

// Status returns the current phase.
func (g *Game) Status() Status { return g.status }

// Board returns the live board.
func (g *Game) Board() *Board { return g.board }

// FlagsRemaining is mines minus flags placed. It goes negative when the
// player over-flags.
func (g *Game) FlagsRemaining() int {
	return g.cfg.Mines - g.flags
}

// State returns the platform-facing status.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.status == Won || g.status == Lost}
}

var adjacentColors = [...]core.Color{
	core.ColorDefault, core.ColorBlue, core.ColorGreen, core.ColorRed,
	core.ColorMagenta, core.ColorYellow, core.ColorCyan, core.ColorDefault, core.ColorGray,
}

// Render draws the HUD and the board, three screen columns per cell.
func (g *Game) Render(dst *core.Screen) {
	secs := 0
	if g.tickRate > 0 {
		secs = g.ticks / g.tickRate
	}
	hud := fmt.Sprintf(" 💣 Minesweeper   Mines: %d   Flags left: %d   Time: %ds", g.cfg.Mines, g.FlagsRemaining(), secs)
	dst.DrawTextColor(0, 0, hud, core.ColorAccent)
	dst.DrawTextColor(1, 1, "Arrows move, Enter reveals, F flags", core.ColorMuted)

	boardW, boardH := g.cfg.Cols*3+2, g.cfg.Rows+2
	if dst.Width() < boardW || dst.Height() < boardH+3 {
		dst.Overlay("Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+3), core.ColorYellow)
		return
	}
	ox, oy := (dst.Width()-boardW)/2, 3
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorMuted)

	for y := 0; y < g.cfg.Rows; y++ {
		for x := 0; x < g.cfg.Cols; x++ {
			p := core.Point{X: x, Y: y}
			ch, color := g.glyph(p)
			sx, sy := ox+1+x*3, oy+1+y
			if p == g.cursor && (g.status == Idle || g.status == Playing) {
				dst.SetColor(sx, sy, '[', core.ColorAccent)
				dst.SetColor(sx+2, sy, ']', core.ColorAccent)
			}
			dst.SetColor(sx+1, sy, ch, color)
		}
	}

	switch g.status {
	case Won:
		dst.Overlay(fmt.Sprintf("Cleared! Score: %d", g.score), "R to play again, Esc for menu", core.ColorGreen)
	case Lost:
		dst.Overlay("Boom!", "R to play again, Esc for menu", core.ColorRed)
	}
}

func (g *Game) glyph(p core.Point) (rune, core.Color) {
	c := g.board.At(p)
	switch {
	case c.Flagged && !c.Open:
		return 'F', core.ColorRed
	case !c.Open:
		return '■', core.ColorMuted
	case c.Mine && p == g.exploded && g.status == Lost:
		return '*', core.ColorRed
	case c.Mine:
		return '*', core.ColorDefault
	case c.Adjacent == 0:
		return '·', core.ColorMuted
	default:
		return rune('0' + c.Adjacent), adjacentColors[c.Adjacent]
	}
}
