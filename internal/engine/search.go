package engine

import (
	"github.com/hailam/gothello/internal/board"
)

// Infinity bounds every reachable value. Material on a 25-point board never
// exceeds ±25, so this sits well outside the achievable range.
const Infinity = 30000

// Searcher performs the negamax alpha-beta search.
// Each branch works on its own clone of the board; only the transposition
// table is shared across the tree.
type Searcher struct {
	tt *TranspositionTable

	nodes   uint64
	cutoffs uint64
	ttCuts  uint64
}

// NewSearcher creates a searcher backed by tt.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt}
}

// Reset zeroes the node counters for a new search.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.cutoffs = 0
	s.ttCuts = 0
}

// Nodes returns the number of nodes searched since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Cutoffs returns the number of beta cutoffs since the last Reset.
func (s *Searcher) Cutoffs() uint64 {
	return s.cutoffs
}

// TTCutoffs returns the number of nodes answered from the table since the last Reset.
func (s *Searcher) TTCutoffs() uint64 {
	return s.ttCuts
}

// Negamax returns the value of b to the side to move, searched depth plies
// deep inside the (alpha, beta) window. The result is fail-soft: values
// outside the window are bounds, and are stored in the table as such.
func (s *Searcher) Negamax(b *board.Board, depth, alpha, beta int) int {
	s.nodes++
	origAlpha, origBeta := alpha, beta

	key := s.tt.Hash(b)
	if entry := s.tt.Probe(key); entry.Depth >= depth {
		switch entry.Flag {
		case TTExact:
			s.ttCuts++
			return entry.Value
		case TTLowerBound:
			alpha = max(alpha, entry.Value)
		case TTUpperBound:
			beta = min(beta, entry.Value)
		}
		if alpha >= beta {
			s.ttCuts++
			return entry.Value
		}
	}

	if depth == 0 {
		return b.Evaluate()
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		moves = append(moves, board.Pass)
	}

	best := -Infinity
	bestMove := board.NoMove
	for _, m := range moves {
		child := b.Clone()
		var value int
		if child.TryMove(m) == board.GameOver {
			// The closing pass is not applied, so the child still has us to
			// move and its material count is already from our side.
			value = child.Evaluate()
		} else {
			value = -s.Negamax(child, depth-1, -beta, -alpha)
		}
		if value > best {
			best = value
			bestMove = m
		}
		alpha = max(alpha, best)
		if alpha >= beta {
			s.cutoffs++
			break
		}
	}

	flag := TTExact
	if best <= origAlpha {
		flag = TTUpperBound
	} else if best >= origBeta {
		flag = TTLowerBound
	}
	s.tt.Put(key, TTEntry{
		BestMove: bestMove,
		Value:    best,
		Flag:     flag,
		Depth:    depth,
	})

	return best
}
