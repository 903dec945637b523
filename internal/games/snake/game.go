// Package snake implements the classic Snake game on a fixed grid.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
)

// ID is the catalog id.
const ID = "snake"

// Direction is the snake's heading.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

var dirVectors = [...]core.Point{
	DirRight: {X: 1, Y: 0},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
	DirUp:    {X: 0, Y: -1},
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Game implements Snake. The platform tick loop is the only clock: the snake
// advances one cell every moveEveryTicks calls to Step.
type Game struct {
	cfg            config.SnakeConfig
	rng            *rand.Rand
	rep            core.Reporter
	tick           uint64
	score          int
	moveEveryTicks int
	moveTicker     int

	snake     []core.Point // head at index 0
	direction Direction
	nextDir   Direction // applied at the next move
	food      core.Point
	hasFood   bool

	gameOver bool
	won      bool
	paused   bool
}

// New creates a game with the given grid and pacing.
func New(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg}
}

func (g *Game) ID() string    { return ID }
func (g *Game) Title() string { return "Snake" }

// Reset places a one-cell snake at the start position heading right.
func (g *Game) Reset(cfg core.RuntimeConfig, rep core.Reporter) {
	if rep == nil {
		rep = core.NopReporter{}
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.rep = rep
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.moveEveryTicks = core.TicksFor(g.cfg.MoveIntervalMS, cfg.TickRate)
	g.moveTicker = 0

	g.snake = []core.Point{{X: g.cfg.StartX, Y: g.cfg.StartY}}
	g.direction = DirRight
	g.nextDir = DirRight
	g.spawnFood()
	g.rep.ScoreUpdate(0)
}

// spawnFood picks a uniformly random free cell. With no free cell left the
// board is full and the round is won.
func (g *Game) spawnFood() {
	free := make([]core.Point, 0, g.cfg.Width*g.cfg.Height-len(g.snake))
	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			p := core.Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.hasFood = false
		return
	}
	g.food = free[g.rng.Intn(len(free))]
	g.hasFood = true
}

func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step buffers direction input and advances the snake on its interval.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.processInput(in)

	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		g.Advance()
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) processInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.Turn(DirUp)
	case in.Has(core.ActionDown):
		g.Turn(DirDown)
	case in.Has(core.ActionLeft):
		g.Turn(DirLeft)
	case in.Has(core.ActionRight):
		g.Turn(DirRight)
	}
}

// Turn buffers a heading for the next move. A reversal of the current
// heading is rejected and leaves the buffer unchanged.
func (g *Game) Turn(d Direction) bool {
	if d == g.direction.Opposite() {
		return false
	}
	g.nextDir = d
	return true
}

// Advance moves the snake one cell. It is a no-op once the round is over.
func (g *Game) Advance() {
	if g.gameOver || g.won || len(g.snake) == 0 {
		return
	}
	g.direction = g.nextDir
	head := g.snake[0].Add(dirVectors[g.direction])

	// Every body cell counts, including the tail that is about to move.
	if !head.In(g.cfg.Width, g.cfg.Height) || g.isSnakeAt(head) {
		g.gameOver = true
		g.finish(false)
		return
	}

	g.snake = append([]core.Point{head}, g.snake...)
	if g.hasFood && head == g.food {
		g.score += g.cfg.FoodPoints
		g.rep.ScoreUpdate(g.score)
		g.spawnFood()
		if !g.hasFood {
			g.won = true
			g.finish(true)
		}
		return
	}
	g.snake = g.snake[:len(g.snake)-1]
}

func (g *Game) finish(won bool) {
	g.rep.GameOver(core.Outcome{
		Score:      g.score,
		Won:        won,
		CustomData: map[string]any{"length": len(g.snake)},
	})
}

// State returns the platform-facing status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused,
	}
}

// Render draws the HUD and the board, two screen columns per cell.
func (g *Game) Render(dst *core.Screen) {
	hud := fmt.Sprintf(" 🐍 Snake   Score: %d   Length: %d", g.score, len(g.snake))
	dst.DrawTextColor(0, 0, hud, core.ColorAccent)
	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorMuted)
	}

	boardW, boardH := g.cfg.Width*2+2, g.cfg.Height+2
	if dst.Width() < boardW || dst.Height() < boardH+2 {
		dst.Overlay("Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+2), core.ColorYellow)
		return
	}
	ox := (dst.Width() - boardW) / 2
	oy := 2
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorMuted)

	cell := func(p core.Point, r rune, c core.Color) {
		x, y := ox+1+p.X*2, oy+1+p.Y
		dst.SetColor(x, y, r, c)
		dst.SetColor(x+1, y, r, c)
	}
	if g.hasFood {
		cell(g.food, '●', core.ColorRed)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		c := core.ColorGreen
		if i == 0 {
			c = core.ColorAccent
		}
		cell(g.snake[i], '█', c)
	}

	switch {
	case g.won:
		dst.Overlay("Board cleared!", fmt.Sprintf("Final score: %d", g.score), core.ColorGreen)
	case g.gameOver:
		dst.Overlay(fmt.Sprintf("Game Over  Score: %d", g.score), "R to restart, Esc for menu", core.ColorRed)
	case g.paused:
		dst.Overlay("Paused", "P to continue", core.ColorYellow)
	}
}
