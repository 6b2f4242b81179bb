package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hailam/gothello/internal/board"
)

// children expands b the way the searcher does: legal placements, or a
// forced pass when there are none.
func children(b *board.Board) []board.Move {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		moves = append(moves, board.Pass)
	}
	return moves
}

// fullWidth is plain negamax: no pruning, no table.
func fullWidth(b *board.Board, depth int) int {
	if depth == 0 {
		return b.Evaluate()
	}
	best := -Infinity
	for _, m := range children(b) {
		child := b.Clone()
		var v int
		if child.TryMove(m) == board.GameOver {
			v = child.Evaluate()
		} else {
			v = -fullWidth(child, depth-1)
		}
		best = max(best, v)
	}
	return best
}

// alphaBeta is negamax with pruning but without a table.
func alphaBeta(b *board.Board, depth, alpha, beta int) int {
	if depth == 0 {
		return b.Evaluate()
	}
	best := -Infinity
	for _, m := range children(b) {
		child := b.Clone()
		var v int
		if child.TryMove(m) == board.GameOver {
			v = child.Evaluate()
		} else {
			v = -alphaBeta(child, depth-1, -beta, -alpha)
		}
		best = max(best, v)
		alpha = max(alpha, best)
		if alpha >= beta {
			break
		}
	}
	return best
}

func testPositions(t *testing.T) map[string]*board.Board {
	t.Helper()
	positions := map[string]*board.Board{
		"empty": board.NewBoard(),
	}

	contact := parse(t,
		".....",
		".WB..",
		"WB.B.",
		".WB..",
		".....",
	)
	positions["contact"] = contact

	crowded := parse(t,
		"BBWWW",
		"B.BW.",
		"BBBWW",
		"WWBW.",
		".WBB.",
	)
	positions["crowded"] = crowded

	crowdedWhite := crowded.Clone()
	crowdedWhite.SideToMove = board.White
	positions["crowded-white"] = crowdedWhite

	afterPass := crowded.Clone()
	afterPass.PreviousMove = board.Pass
	positions["crowded-after-pass"] = afterPass

	return positions
}

func TestAlphaBetaMatchesFullWidth(t *testing.T) {
	for name, b := range testPositions(t) {
		for depth := 1; depth <= 3; depth++ {
			t.Run(fmt.Sprintf("%s/depth-%d", name, depth), func(t *testing.T) {
				want := fullWidth(b, depth)
				assert.Equal(t, want, alphaBeta(b, depth, -Infinity, Infinity))

				s := NewSearcher(NewTranspositionTableWithKeys(board.NewSeededZobrist(11)))
				assert.Equal(t, want, s.Negamax(b.Clone(), depth, -Infinity, Infinity))
			})
		}
	}
}

func TestTableDoesNotChangeRootValues(t *testing.T) {
	for name, b := range testPositions(t) {
		for depth := 1; depth <= 2; depth++ {
			t.Run(fmt.Sprintf("%s/depth-%d", name, depth), func(t *testing.T) {
				info := NewSeededEngine(4).Analyze(b.Clone(), depth)

				moves := b.LegalMoves()
				if len(moves) == 0 {
					assert.Equal(t, board.Pass, info.Move)
					return
				}
				best := -Infinity
				for i, m := range moves {
					child := b.Clone()
					child.TryMove(m)
					v := -alphaBeta(child, depth, -Infinity, Infinity)
					assert.Equal(t, v, info.Scores[i].Value, "move %s", m)
					best = max(best, v)
				}
				assert.Equal(t, best, info.Value)
			})
		}
	}
}

func TestNegamaxStoresBounds(t *testing.T) {
	tt := NewTranspositionTableWithKeys(board.NewSeededZobrist(21))
	s := NewSearcher(tt)
	b := board.NewBoard()

	v := s.Negamax(b, 2, -Infinity, Infinity)
	root := tt.Lookup(b)
	assert.Equal(t, 2, root.Depth)
	assert.Equal(t, TTExact, root.Flag)
	assert.Equal(t, v, root.Value)
	assert.True(t, root.BestMove.IsPlacement())

	// Searching again is answered straight from the table.
	nodes := s.Nodes()
	assert.Equal(t, v, s.Negamax(b, 2, -Infinity, Infinity))
	assert.Equal(t, nodes+1, s.Nodes())
	assert.Equal(t, uint64(1), s.TTCutoffs())

	// A null window below the value fails high and is stored as a lower bound.
	tt.Clear()
	got := s.Negamax(b, 2, v-2, v-1)
	assert.GreaterOrEqual(t, got, v-1)
	assert.Equal(t, TTLowerBound, tt.Lookup(b).Flag)

	// A window above the value fails low and is stored as an upper bound.
	tt.Clear()
	got = s.Negamax(b, 2, v+1, v+2)
	assert.LessOrEqual(t, got, v+1)
	assert.Equal(t, TTUpperBound, tt.Lookup(b).Flag)
}

func TestNegamaxDepthZeroIsStatic(t *testing.T) {
	b := parse(t,
		"B....",
		".....",
		"..W..",
		".....",
		"B....",
	)
	s := NewSearcher(NewTranspositionTable())
	assert.Equal(t, 1, s.Negamax(b, 0, -Infinity, Infinity))
	assert.Equal(t, 0, s.tt.Len())
}
