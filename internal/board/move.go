package board

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the side length of the board.
const Size = 5

// NumPoints is the number of points on the board.
const NumPoints = Size * Size

// Move encodes a Gothello move in a byte:
// 0:     no move recorded
// 1-25:  1 + row*5 + col
// 26:    pass
type Move uint8

const (
	// NoMove represents the absence of a move (e.g. before the first turn).
	NoMove Move = 0
	// Pass is the pass move. It is always legal.
	Pass Move = NumPoints + 1
)

// ErrBadMove is returned when a move string cannot be parsed.
var ErrBadMove = errors.New("invalid move")

// NewMove creates a placement move. Coordinates outside 0..4 are a caller bug and panic.
func NewMove(row, col int) Move {
	mustBeOnBoard(row, col)
	return Move(1 + row*Size + col)
}

// mustBeOnBoard panics if (row, col) is not a point on the board.
func mustBeOnBoard(row, col int) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		panic(fmt.Sprintf("board: point (%d,%d) is off the board", row, col))
	}
}

// Row returns the row of a placement move (0-4).
func (m Move) Row() int {
	return (int(m) - 1) / Size
}

// Col returns the column of a placement move (0-4).
func (m Move) Col() int {
	return (int(m) - 1) % Size
}

// IsPass returns true for the pass move.
func (m Move) IsPass() bool {
	return m == Pass
}

// IsPlacement returns true if the move places a stone.
func (m Move) IsPlacement() bool {
	return m >= 1 && m <= NumPoints
}

// String returns the wire notation of the move: column letter a-e followed by
// row digit 1-5 (e.g. "c3"), or "pass".
func (m Move) String() string {
	switch {
	case m == Pass:
		return "pass"
	case m.IsPlacement():
		return string([]byte{byte('a' + m.Col()), byte('1' + m.Row())})
	default:
		return "none"
	}
}

// ParseMove parses wire notation ("c3" or "pass").
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "pass" {
		return Pass, nil
	}
	if len(s) != 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	col := int(s[0]) - 'a'
	row := int(s[1]) - '1'
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return NoMove, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	return NewMove(row, col), nil
}
