// Package games assembles the arcade catalog from the individual games.
package games

import (
	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/games/comingsoon"
	"github.com/vovakirdan/arcade-hub/internal/games/minesweeper"
	"github.com/vovakirdan/arcade-hub/internal/games/snake"
	"github.com/vovakirdan/arcade-hub/internal/games/tictactoe"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

// NewCatalog builds the registry in display order. Entries without an
// implementation resolve to the coming-soon screen.
func NewCatalog(cfg config.Config) *registry.Registry {
	r := registry.New(comingsoon.Factory)

	r.Add(registry.Descriptor{
		ID:          tictactoe.ID,
		Title:       "Tic-Tac-Toe",
		Description: "Classic 3x3 strategy game. Play against a basic AI.",
		Icon:        "⭕",
		MetricLabel: "Win",
	}, func() registry.Game { return tictactoe.New(cfg.TicTacToe) })

	r.Add(registry.Descriptor{
		ID:          snake.ID,
		Title:       "Snake",
		Description: "Eat apples, grow longer, don't hit the walls.",
		Icon:        "🐍",
		MetricLabel: "Score",
	}, func() registry.Game { return snake.New(cfg.Snake) })

	r.Add(registry.Descriptor{
		ID:          minesweeper.ID,
		Title:       "Minesweeper",
		Description: "Clear the board without detonating any mines.",
		Icon:        "💣",
		MetricLabel: "Time (s)",
	}, func() registry.Game { return minesweeper.New(cfg.Minesweeper) })

	for _, d := range comingSoon {
		r.Add(d, nil)
	}
	return r
}

var comingSoon = []registry.Descriptor{
	{ID: "tetris", Title: "Tetris", Description: "Stack shapes and clear lines.", Icon: "🧱", MetricLabel: "Score"},
	{ID: "2048", Title: "2048", Description: "Join the numbers and get to the 2048 tile.", Icon: "🔢", MetricLabel: "Score"},
	{ID: "flappy", Title: "Flappy Ball", Description: "Tap to fly through pipes.", Icon: "🐦", MetricLabel: "Pipes"},
	{ID: "billiards", Title: "Billiards", Description: "8-Ball pool physics simulation.", Icon: "🎱", MetricLabel: "Score"},
	{ID: "ping-pong", Title: "Ping Pong", Description: "Classic arcade table tennis.", Icon: "🏓", MetricLabel: "Score"},
	{ID: "sudoku", Title: "Sudoku", Description: "Fill the grid so every row, column and box has digits 1-9.", Icon: "🧩", MetricLabel: "Time"},
	{ID: "nuts-bolts", Title: "Nuts & Bolts", Description: "Sort the colored nuts onto matching bolts.", Icon: "🔩", MetricLabel: "Level"},
}
