package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts the number of leaf nodes at the given depth, passes excluded.
func perft(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := b.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		child := b.Clone()
		child.TryMove(m)
		nodes += perft(child, depth-1)
	}
	return nodes
}

func TestPerftEmptyBoard(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 25},
		{2, 600},
		{3, 13800},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(b, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestLegalMovesRowMajor(t *testing.T) {
	b, err := ParseGrid(
		"....W",
		".....",
		"..B..",
		".....",
		"W....",
	)
	require.NoError(t, err)

	moves := b.LegalMoves()
	require.Len(t, moves, 22)
	for i := 1; i < len(moves); i++ {
		assert.Less(t, moves[i-1], moves[i], "moves must come out in row-major order")
	}
	assert.Equal(t, "b1", moves[0].String())
	assert.Equal(t, "d5", moves[len(moves)-1].String())
	assert.NotContains(t, moves, Pass)
}

func TestNoLegalMovesOnFullBoard(t *testing.T) {
	b, err := ParseGrid(
		"BBBBB",
		"BBBBB",
		"BB.BB",
		"BBBBB",
		"BBBBB",
	)
	require.NoError(t, err)

	b.SideToMove = White
	assert.Empty(t, b.LegalMoves())
	assert.False(t, b.HasLegalMoves())
	assert.True(t, b.IsLegal(Pass))

	// Filling the last point would leave the whole black group without liberties.
	b.SideToMove = Black
	assert.False(t, b.HasLegalMoves())
}
