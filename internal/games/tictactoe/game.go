// Package tictactoe implements Tic-Tac-Toe against a simple computer opponent.
package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
)

// ID is the catalog id.
const ID = "tic-tac-toe"

// Status is the phase of a round.
type Status int

const (
	AwaitingPlayer Status = iota
	AwaitingAI
	PlayerWon
	AIWon
	Draw
)

// Finished reports whether the round is over.
func (s Status) Finished() bool {
	return s >= PlayerWon
}

func (s Status) String() string {
	switch s {
	case AwaitingPlayer:
		return "awaiting-player"
	case AwaitingAI:
		return "awaiting-ai"
	case PlayerWon:
		return "win"
	case AIWon:
		return "loss"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Game is one Tic-Tac-Toe round. The player is X and always moves first.
type Game struct {
	cfg          config.TicTacToeConfig
	rng          *rand.Rand
	rep          core.Reporter
	board        Board
	status       Status
	cursor       int
	moves        int
	aiDelayTicks int
	aiWait       int
	winLine      [3]int
	score        int
}

// New creates a game with the given settings.
func New(cfg config.TicTacToeConfig) *Game {
	return &Game{cfg: cfg}
}

func (g *Game) ID() string    { return ID }
func (g *Game) Title() string { return "Tic-Tac-Toe" }

// Reset clears the board and starts a new round.
func (g *Game) Reset(cfg core.RuntimeConfig, rep core.Reporter) {
	if rep == nil {
		rep = core.NopReporter{}
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.rep = rep
	g.board = Board{}
	g.status = AwaitingPlayer
	g.cursor = 4
	g.moves = 0
	g.score = 0
	g.aiWait = 0
	g.aiDelayTicks = 0
	if g.cfg.AIDelayMS > 0 {
		g.aiDelayTicks = core.TicksFor(g.cfg.AIDelayMS, cfg.TickRate)
	}
	g.rep.ScoreUpdate(0)
}

// Step handles cursor movement, placement and the opponent's delayed reply.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}
	waiting := g.status == AwaitingAI
	if in.Has(core.ActionConfirm) {
		g.Place(g.cursor)
	}

	// The delay counts the steps after the placement.
	switch {
	case g.status != AwaitingAI:
	case waiting:
		g.aiWait--
		if g.aiWait <= 0 {
			g.aiMove()
		}
	case g.aiWait <= 0:
		g.aiMove()
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(dx, dy int) {
	x := core.Clamp(g.cursor%3+dx, 0, 2)
	y := core.Clamp(g.cursor/3+dy, 0, 2)
	g.cursor = y*3 + x
}

// Place puts the player's mark on cell i. It returns false and changes
// nothing unless the player is to move and the cell is empty.
func (g *Game) Place(i int) bool {
	if g.status != AwaitingPlayer || i < 0 || i > 8 || g.board[i] != Empty {
		return false
	}
	g.board[i] = X
	g.moves++
	if g.evaluate() {
		return true
	}
	g.status = AwaitingAI
	g.aiWait = g.aiDelayTicks
	return true
}

// aiMove takes an immediately winning cell if one exists, otherwise a
// uniformly random empty cell. It does not block the player.
func (g *Game) aiMove() {
	i, ok := g.board.WinningMove(O)
	if !ok {
		free := g.board.EmptyCells()
		i = free[g.rng.Intn(len(free))]
	}
	g.board[i] = O
	g.moves++
	if !g.evaluate() {
		g.status = AwaitingPlayer
	}
}

// evaluate ends the round when a line is complete or the board is full.
func (g *Game) evaluate() bool {
	w, line := g.board.Winner()
	switch {
	case w == X:
		g.winLine = line
		g.score = g.cfg.WinPoints
		g.rep.ScoreUpdate(g.score)
		g.finish(PlayerWon)
	case w == O:
		g.winLine = line
		g.finish(AIWon)
	case g.board.Full():
		g.finish(Draw)
	default:
		return false
	}
	return true
}

func (g *Game) finish(s Status) {
	g.status = s
	g.rep.GameOver(core.Outcome{
		Score: g.score,
		Won:   s == PlayerWon,
		CustomData: map[string]any{
			"result": s.String(),
			"moves":  g.moves,
		},
	})
}

// Board returns a copy of the grid.
func (g *Game) Board() Board { return g.board }

// Status returns the current phase.
func (g *Game) Status() Status { return g.status }

// State returns the platform-facing status.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.status.Finished()}
}

// Render draws the board centered with a status line above it.
func (g *Game) Render(dst *core.Screen) {
	const boardW, boardH = 11, 5
	x0 := (dst.Width() - boardW) / 2
	y0 := max((dst.Height()-boardH)/2, 3)

	dst.DrawTextColor(1, 0, fmt.Sprintf("⭕ Tic-Tac-Toe   You: X   CPU: O   Moves: %d", g.moves), core.ColorAccent)

	for r := 0; r < 3; r++ {
		y := y0 + r*2
		for c := 0; c < 3; c++ {
			i := r*3 + c
			x := x0 + c*4
			g.renderCell(dst, x, y, i)
			if c < 2 {
				dst.SetColor(x+3, y, '│', core.ColorMuted)
			}
		}
		if r < 2 {
			for dx := 0; dx < boardW; dx++ {
				ch := '─'
				if dx%4 == 3 {
					ch = '┼'
				}
				dst.SetColor(x0+dx, y+1, ch, core.ColorMuted)
			}
		}
	}

	msg := ""
	switch g.status {
	case AwaitingPlayer:
		msg = "Your move: arrows to aim, Enter to place"
	case AwaitingAI:
		msg = "CPU is thinking..."
	case PlayerWon:
		msg = "You win! R to play again, Esc for menu"
	case AIWon:
		msg = "CPU wins. R to play again, Esc for menu"
	case Draw:
		msg = "Draw. R to play again, Esc for menu"
	}
	dst.DrawTextCentered(y0+boardH+1, msg, core.ColorDefault)
}

func (g *Game) renderCell(dst *core.Screen, x, y, i int) {
	m := g.board[i]
	color := core.ColorDefault
	switch m {
	case X:
		color = core.ColorBlue
	case O:
		color = core.ColorRed
	}
	if g.status.Finished() && g.status != Draw {
		for _, w := range g.winLine {
			if w == i {
				color = core.ColorGreen
			}
		}
	}

	ch := []rune(m.String())[0]
	if i == g.cursor && g.status == AwaitingPlayer {
		dst.SetColor(x, y, '[', core.ColorAccent)
		dst.SetColor(x+2, y, ']', core.ColorAccent)
		if m == Empty {
			ch = '·'
			color = core.ColorAccent
		}
	}
	dst.SetColor(x+1, y, ch, color)
}
