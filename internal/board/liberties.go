package board

// scratch marks the points of one group during a single liberties or capture query.
type scratch [Size][Size]bool

// neighbors lists the orthogonal directions in the fixed order up, down, left, right.
var neighbors = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func onBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// flood marks the group containing (row, col) in s. It uses an explicit stack,
// so its depth is bounded by the number of points.
func (b *Board) flood(s *scratch, row, col int) {
	color := b.grid[row][col]
	var stack [NumPoints][2]int
	n := 0
	s[row][col] = true
	stack[n] = [2]int{row, col}
	n++
	for n > 0 {
		n--
		r, c := stack[n][0], stack[n][1]
		for _, d := range neighbors {
			nr, nc := r+d[0], c+d[1]
			if !onBoard(nr, nc) || s[nr][nc] || b.grid[nr][nc] != color {
				continue
			}
			s[nr][nc] = true
			stack[n] = [2]int{nr, nc}
			n++
		}
	}
}

// borders reports whether the empty point (row, col) touches the marked group.
func (s *scratch) borders(row, col int) bool {
	if s[row][col] {
		return false
	}
	for _, d := range neighbors {
		nr, nc := row+d[0], col+d[1]
		if onBoard(nr, nc) && s[nr][nc] {
			return true
		}
	}
	return false
}

// Liberties returns the number of distinct empty points adjacent to the group
// containing the stone at (row, col).
func (b *Board) Liberties(row, col int) int {
	mustBeOnBoard(row, col)
	var s scratch
	b.flood(&s, row, col)
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.grid[r][c] == Empty && s.borders(r, c) {
				n++
			}
		}
	}
	return n
}

// GroupSize returns the number of stones in the group containing (row, col).
func (b *Board) GroupSize(row, col int) int {
	mustBeOnBoard(row, col)
	if b.grid[row][col] == Empty {
		return 0
	}
	var s scratch
	b.flood(&s, row, col)
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s[r][c] {
				n++
			}
		}
	}
	return n
}

// capture removes the group containing (row, col) if it has no liberties.
func (b *Board) capture(row, col int) {
	if b.Liberties(row, col) > 0 {
		return
	}
	var s scratch
	b.flood(&s, row, col)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s[r][c] {
				b.grid[r][c] = Empty
			}
		}
	}
}

// applyCaptures checks the neighbors of a freshly placed stone and removes
// every opponent group left without liberties.
func (b *Board) applyCaptures(row, col int) {
	opp := b.grid[row][col].Other()
	for _, d := range neighbors {
		nr, nc := row+d[0], col+d[1]
		if onBoard(nr, nc) && b.grid[nr][nc] == opp {
			b.capture(nr, nc)
		}
	}
}
