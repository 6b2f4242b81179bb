package board

// Color is the state of a single point: empty or holding a stone.
// Black and White double as the side to move.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Other returns the opposite color. Empty has no opposite and is returned unchanged.
func (c Color) Other() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Symbol returns the single-character diagram symbol for the color.
func (c Color) Symbol() byte {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	default:
		return '.'
	}
}

// ParseColor parses "black"/"white" (or "b"/"w").
func ParseColor(s string) (Color, bool) {
	switch s {
	case "black", "b", "Black", "B":
		return Black, true
	case "white", "w", "White", "W":
		return White, true
	}
	return Empty, false
}
