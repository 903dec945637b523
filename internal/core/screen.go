package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Screen is a 2D cell buffer that games draw into.
// Games never touch the terminal; the platform turns the buffer into styled text.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a cleared screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: max(width, 0), height: max(height, 0)}
	s.allocate()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		row := make([]Cell, s.width)
		for x := range row {
			row[x] = blank
		}
		s.cells[y] = row
	}
}

// Width returns the screen width in cells.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in cells.
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions. Content is discarded; the next Render repaints it.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = max(width, 0), max(height, 0)
	s.allocate()
}

// Clear fills the screen with blank cells.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a rune with the default color. Out-of-bounds writes are ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColor(x, y, r, ColorDefault)
}

// SetColor places a colored rune. Out-of-bounds writes are ignored.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at (x, y), or a space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes text starting at (x, y), clipped at the edges.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes colored text starting at (x, y). Wide runes take two cells.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColor(x, y, r, c)
		w := runewidth.RuneWidth(r)
		if w == 2 {
			// The terminal paints the right half; keep the buffer in step with it.
			s.SetColor(x+1, y, 0, c)
		}
		x += max(w, 1)
	}
}

// DrawTextCentered draws text centered horizontally on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - runewidth.StringWidth(text)) / 2
	s.DrawTextColor(x, y, text, c)
}

// DrawBox draws a box outline with box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(r.Right()-1, r.Y, '┐', c)
	s.SetColor(r.X, r.Bottom()-1, '└', c)
	s.SetColor(r.Right()-1, r.Bottom()-1, '┘', c)
	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetColor(x, r.Y, '─', c)
		s.SetColor(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetColor(r.X, y, '│', c)
		s.SetColor(r.Right()-1, y, '│', c)
	}
}

// FillRect fills a rectangle with a colored rune.
func (s *Screen) FillRect(r Rect, ch rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColor(x, y, ch, c)
		}
	}
}

// Overlay draws a framed two-line message box in the middle of the screen.
func (s *Screen) Overlay(line1, line2 string, c Color) {
	w := max(runewidth.StringWidth(line1), runewidth.StringWidth(line2)) + 4
	box := NewRect((s.width-w)/2, (s.height-5)/2, w, 5)
	s.FillRect(box, ' ', ColorDefault)
	s.DrawBox(box, c)
	s.DrawTextCentered(box.Y+1, line1, c)
	s.DrawTextCentered(box.Y+3, line2, ColorMuted)
}

// String returns the buffer as plain text, rows joined by newlines.
// Continuation cells of wide runes are skipped.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns row y as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		if c.Rune != 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
