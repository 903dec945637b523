package tictactoe

// Mark is the content of a board cell.
type Mark uint8

const (
	Empty Mark = iota
	X          // player
	O          // opponent
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Board is a 3x3 grid in row-major order, indices 0..8.
type Board [9]Mark

// lines lists every winning triple.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Winner returns the mark that owns a complete line and that line.
// It returns Empty when no line is complete.
func (b Board) Winner() (Mark, [3]int) {
	for _, l := range lines {
		m := b[l[0]]
		if m != Empty && b[l[1]] == m && b[l[2]] == m {
			return m, l
		}
	}
	return Empty, [3]int{}
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// EmptyCells returns the free indices in ascending order.
func (b Board) EmptyCells() []int {
	out := make([]int, 0, 9)
	for i, m := range b {
		if m == Empty {
			out = append(out, i)
		}
	}
	return out
}

// WinningMove returns the first empty cell, in index order, where placing m
// completes a line.
func (b Board) WinningMove(m Mark) (int, bool) {
	for _, i := range b.EmptyCells() {
		b[i] = m // b is a copy
		w, _ := b.Winner()
		b[i] = Empty
		if w == m {
			return i, true
		}
	}
	return -1, false
}
