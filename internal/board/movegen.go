package board

// IsLegal reports whether m can be played by the side to move.
// Pass is always legal. A placement is legal if the point is empty and the
// new stone's group has a liberty before any captures are resolved. A stone
// that would only gain liberties by capturing is treated as suicide.
func (b *Board) IsLegal(m Move) bool {
	if m == Pass {
		return true
	}
	if !m.IsPlacement() {
		return false
	}
	return b.placementOK(m.Row(), m.Col())
}

func (b *Board) placementOK(row, col int) bool {
	if b.grid[row][col] != Empty {
		return false
	}
	b.grid[row][col] = b.SideToMove
	n := b.Liberties(row, col)
	b.grid[row][col] = Empty
	return n > 0
}

// LegalMoves returns the legal placements for the side to move in row-major
// order. Pass is not included.
func (b *Board) LegalMoves() []Move {
	moves := make([]Move, 0, NumPoints)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.grid[r][c] == Empty && b.placementOK(r, c) {
				moves = append(moves, NewMove(r, c))
			}
		}
	}
	return moves
}

// HasLegalMoves returns true if the side to move has any legal placement.
func (b *Board) HasLegalMoves() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.grid[r][c] == Empty && b.placementOK(r, c) {
				return true
			}
		}
	}
	return false
}
