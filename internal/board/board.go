package board

import (
	"fmt"
	"strings"
)

// Status is the result of TryMove.
type Status uint8

const (
	Continue Status = iota
	GameOver
)

// String returns the status name.
func (s Status) String() string {
	if s == GameOver {
		return "game-over"
	}
	return "continue"
}

// Grid holds the color of every point, indexed [row][col].
type Grid [Size][Size]Color

// Board represents a complete Gothello position.
// A Board is self-contained and safe to copy by value; the searcher clones it
// per branch instead of undoing moves.
type Board struct {
	grid Grid

	// Game state
	SideToMove   Color
	PreviousMove Move // Last move played, NoMove before the first turn

	// BestMove holds the result of the last search run on this board.
	BestMove Move
}

// NewBoard returns an empty board with Black to move.
func NewBoard() *Board {
	return &Board{SideToMove: Black}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Grid returns a copy of the board's grid.
func (b *Board) Grid() Grid {
	return b.grid
}

// At returns the color at (row, col).
func (b *Board) At(row, col int) Color {
	mustBeOnBoard(row, col)
	return b.grid[row][col]
}

// Set puts a color at (row, col) without captures. Used to build test and
// analysis positions.
func (b *Board) Set(row, col int, c Color) {
	mustBeOnBoard(row, col)
	b.grid[row][col] = c
}

// Count returns the number of stones of the given color.
func (b *Board) Count(c Color) int {
	n := 0
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			if b.grid[r][col] == c {
				n++
			}
		}
	}
	return n
}

// Evaluate returns the material differential from the side to move's point
// of view: own stones minus opponent stones.
func (b *Board) Evaluate() int {
	return b.Count(b.SideToMove) - b.Count(b.SideToMove.Other())
}

// Winner returns the color with more stones, or Empty on a tie.
func (b *Board) Winner() Color {
	black, white := b.Count(Black), b.Count(White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}

// MakeMove records m as the previous move and, for a placement, puts the
// side to move's stone on the board and resolves captures.
// It does not flip the side to move.
func (b *Board) MakeMove(m Move) {
	b.PreviousMove = m
	if m == Pass {
		return
	}
	row, col := m.Row(), m.Col()
	mustBeOnBoard(row, col)
	b.grid[row][col] = b.SideToMove
	b.applyCaptures(row, col)
}

// TryMove plays m for the side to move. Two consecutive passes end the game:
// the second pass is reported as GameOver and nothing is applied.
// Calling TryMove again after GameOver is a caller error.
func (b *Board) TryMove(m Move) Status {
	if m == Pass && b.PreviousMove == Pass {
		return GameOver
	}
	b.MakeMove(m)
	b.SideToMove = b.SideToMove.Other()
	return Continue
}

// String returns a diagram of the board, row 5 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	for r := Size - 1; r >= 0; r-- {
		fmt.Fprintf(&sb, "%d ", r+1)
		for c := 0; c < Size; c++ {
			sb.WriteByte(b.grid[r][c].Symbol())
			if c < Size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e\n")
	fmt.Fprintf(&sb, "to move: %s", b.SideToMove)
	return sb.String()
}

// ParseGrid builds a board from one string per row, top row (row 5) first.
// '.' is empty, 'B'/'X' black, 'W'/'O' white; spaces are ignored.
// Black is to move.
func ParseGrid(rows ...string) (*Board, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("board: want %d rows, got %d", Size, len(rows))
	}
	b := NewBoard()
	for i, line := range rows {
		r := Size - 1 - i
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Size {
			return nil, fmt.Errorf("board: row %d has %d points", r+1, len(line))
		}
		for c := 0; c < Size; c++ {
			switch line[c] {
			case '.':
			case 'B', 'X', 'b', 'x':
				b.grid[r][c] = Black
			case 'W', 'O', 'w', 'o':
				b.grid[r][c] = White
			default:
				return nil, fmt.Errorf("board: bad point %q in row %d", line[c], r+1)
			}
		}
	}
	return b, nil
}
