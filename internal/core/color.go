package core

// Color is a logical foreground color for a screen cell.
// The platform maps it to a concrete terminal color per theme.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
	ColorAccent // theme accent (cursor, titles)
	ColorMuted  // theme secondary text
)

// Cell is a single screen position: a rune and its color.
type Cell struct {
	Rune  rune
	Color Color
}

// blank is the value every cell holds after Clear.
var blank = Cell{Rune: ' ', Color: ColorDefault}
