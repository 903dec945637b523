package minesweeper

import (
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// Cell is one square of the board.
type Cell struct {
	Mine     bool
	Adjacent int // mines among the 8 neighbors
	Open     bool
	Flagged  bool
}

// Board is a rows x cols grid. Points use X for the column and Y for the row.
type Board struct {
	Rows, Cols int
	cells      []Cell
}

// NewBoard creates a board with every cell closed and no mines.
func NewBoard(rows, cols int) *Board {
	return &Board{Rows: rows, Cols: cols, cells: make([]Cell, rows*cols)}
}

// At returns a pointer to the cell at p. p must be in bounds.
func (b *Board) At(p core.Point) *Cell {
	return &b.cells[p.Y*b.Cols+p.X]
}

// Contains reports whether p is on the board.
func (b *Board) Contains(p core.Point) bool {
	return p.In(b.Cols, b.Rows)
}

// Neighbors returns the in-bounds cells around p.
func (b *Board) Neighbors(p core.Point) []core.Point {
	return p.Neighbors8(b.Cols, b.Rows)
}

// PlaceMines lays n mines uniformly at random, never on safe or its
// neighbors, then precomputes adjacency counts. The caller guarantees
// n <= Rows*Cols-9.
func (b *Board) PlaceMines(n int, safe core.Point, rng *rand.Rand) {
	candidates := make([]core.Point, 0, len(b.cells))
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if core.Abs(x-safe.X) <= 1 && core.Abs(y-safe.Y) <= 1 {
				continue
			}
			candidates = append(candidates, core.Point{X: x, Y: y})
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates[:min(n, len(candidates))] {
		b.At(p).Mine = true
	}

	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			p := core.Point{X: x, Y: y}
			count := 0
			for _, q := range b.Neighbors(p) {
				if b.At(q).Mine {
					count++
				}
			}
			b.At(p).Adjacent = count
		}
	}
}

// FloodOpen opens start and, through every zero-count cell, all connected
// closed unflagged cells. Each cell is opened at most once. It returns the
// number of newly opened cells.
func (b *Board) FloodOpen(start core.Point) int {
	opened := 0
	stack := []core.Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := b.At(p)
		if c.Open || c.Flagged || c.Mine {
			continue
		}
		c.Open = true
		opened++
		if c.Adjacent != 0 {
			continue
		}
		for _, n := range b.Neighbors(p) {
			if nc := b.At(n); !nc.Open && !nc.Flagged {
				stack = append(stack, n)
			}
		}
	}
	return opened
}

// OpenMines exposes every mine, for the end-of-round display.
func (b *Board) OpenMines() {
	for i := range b.cells {
		if b.cells[i].Mine {
			b.cells[i].Open = true
		}
	}
}

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Mine {
			n++
		}
	}
	return n
}
