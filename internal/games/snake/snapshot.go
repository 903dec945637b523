package snake

import "github.com/vovakirdan/arcade-hub/internal/core"

// Phase is the round state shown in a snapshot.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
	PhaseWon      Phase = "won"
)

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Tick           uint64
	Score          int
	Body           []core.Point // head first
	Dir            Direction
	Food           core.Point
	HasFood        bool
	MoveEveryTicks int
	Phase          Phase
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.won:
		phase = PhaseWon
	case g.gameOver:
		phase = PhaseGameOver
	case g.paused:
		phase = PhasePaused
	}
	return Snapshot{
		Tick:           g.tick,
		Score:          g.score,
		Body:           append([]core.Point(nil), g.snake...),
		Dir:            g.direction,
		Food:           g.food,
		HasFood:        g.hasFood,
		MoveEveryTicks: g.moveEveryTicks,
		Phase:          phase,
	}
}

// Head returns the head cell.
func (s Snapshot) Head() core.Point {
	if len(s.Body) == 0 {
		return core.Point{}
	}
	return s.Body[0]
}
