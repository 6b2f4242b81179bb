package engine

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/hailam/gothello/internal/board"
)

// MoveScore is the value of one root move from the root mover's side.
type MoveScore struct {
	Move  board.Move
	Value int
}

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth      int
	Move       board.Move
	Value      int
	Candidates []board.Move // every root move that reached Value
	Scores     []MoveScore  // root moves in generation order
	Nodes      uint64
	Cutoffs    uint64
	TTCutoffs  uint64
	Table      TTStats
	Time       time.Duration
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth     int           // Maximum depth (must be >= 1)
	MoveTime  time.Duration // Time for this move (0 = no limit)
	Remaining time.Duration // Our remaining clock (0 = untimed)
}

// Difficulty represents the engine strength.
type Difficulty int

const (
	Easy   Difficulty = iota // 1 ply after the candidate move
	Medium                   // 2 plies
	Hard                     // 4 plies
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return Medium, false
}

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 1},
	Medium: {Depth: 2},
	Hard:   {Depth: 4},
}

// Engine is the Gothello AI engine.
// It is not safe for concurrent use: run one search at a time.
type Engine struct {
	searcher   *Searcher
	tt         *TranspositionTable
	rng        *frand.RNG
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with random Zobrist keys and tie-breaking.
func NewEngine() *Engine {
	return newEngine(NewTranspositionTable(), frand.New())
}

// NewSeededEngine creates an engine whose Zobrist keys and tie-breaks are
// reproducible from seed.
func NewSeededEngine(seed uint64) *Engine {
	return newEngine(
		NewTranspositionTableWithKeys(board.NewSeededZobrist(seed)),
		board.SeededRNG(seed^0x9E3779B97F4A7C15),
	)
}

func newEngine(tt *TranspositionTable, rng *frand.RNG) *Engine {
	return &Engine{
		searcher:   NewSearcher(tt),
		tt:         tt,
		rng:        rng,
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the engine difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Table returns the engine's transposition table.
func (e *Engine) Table() *TranspositionTable {
	return e.tt
}

// Search finds the best move for b at the configured difficulty.
func (e *Engine) Search(b *board.Board) board.Move {
	return e.SearchWithLimits(b, DifficultySettings[e.difficulty])
}

// FindBestMove searches every root move depth plies past the move itself
// and picks uniformly at random among the moves of maximal value. With no
// legal placement the answer is Pass. The result is also written to
// b.BestMove.
func (e *Engine) FindBestMove(b *board.Board, depth int) board.Move {
	return e.Analyze(b, depth).Move
}

// Analyze runs FindBestMove and returns the full search report.
func (e *Engine) Analyze(b *board.Board, depth int) SearchInfo {
	startTime := time.Now()
	e.searcher.Reset()

	info := SearchInfo{Depth: depth}
	moves := b.LegalMoves()
	if len(moves) == 0 {
		info.Move = board.Pass
		info.Candidates = []board.Move{board.Pass}
		b.BestMove = board.Pass
		log.Debug().Str("side", b.SideToMove.String()).Msg("no-legal-moves-passing")
		return info
	}

	info.Scores = make([]MoveScore, len(moves))
	for i, m := range moves {
		child := b.Clone()
		child.TryMove(m)
		value := -e.searcher.Negamax(child, depth, -Infinity, Infinity)
		info.Scores[i] = MoveScore{Move: m, Value: value}
	}

	info.Value = lo.MaxBy(info.Scores, func(x, y MoveScore) bool {
		return x.Value > y.Value
	}).Value
	info.Candidates = lo.FilterMap(info.Scores, func(s MoveScore, _ int) (board.Move, bool) {
		return s.Move, s.Value == info.Value
	})
	info.Move = info.Candidates[e.rng.Intn(len(info.Candidates))]
	b.BestMove = info.Move

	info.Nodes = e.searcher.Nodes()
	info.Cutoffs = e.searcher.Cutoffs()
	info.TTCutoffs = e.searcher.TTCutoffs()
	info.Table = e.tt.Stats()
	info.Time = time.Since(startTime)

	log.Debug().
		Str("side", b.SideToMove.String()).
		Int("depth", depth).
		Str("move", info.Move.String()).
		Int("value", info.Value).
		Int("candidates", len(info.Candidates)).
		Uint64("nodes", info.Nodes).
		Uint64("tt-cutoffs", info.TTCutoffs).
		Int("tt-size", info.Table.Size).
		Dur("elapsed", info.Time).
		Msg("search-done")

	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return info
}

// SearchWithLimits deepens from depth 1 up to limits.Depth while the time
// budget allows, and returns the move of the deepest completed search.
// Each iteration runs to completion; time is only checked between them.
func (e *Engine) SearchWithLimits(b *board.Board, limits SearchLimits) board.Move {
	maxDepth := max(limits.Depth, 1)
	if limits.MoveTime == 0 && limits.Remaining == 0 {
		return e.FindBestMove(b, maxDepth)
	}

	tm := NewTimeManager()
	tm.Init(limits.Remaining, limits.MoveTime, b.Count(board.Empty))

	var bestMove board.Move
	for depth := 1; depth <= maxDepth; depth++ {
		iterStart := time.Now()
		bestMove = e.FindBestMove(b, depth)
		if depth < maxDepth && !tm.CanDeepen(time.Since(iterStart)) {
			log.Debug().Int("depth", depth).Dur("elapsed", tm.Elapsed()).
				Dur("optimum", tm.OptimumTime()).Msg("time-limit-stop")
			break
		}
	}
	return bestMove
}

// Clear clears the transposition table. Call it between games.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// Perft counts leaf positions depth plies deep (for debugging move generation).
// A forced pass counts as a move.
func (e *Engine) Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		moves = append(moves, board.Pass)
	}

	var nodes uint64
	for _, m := range moves {
		child := b.Clone()
		if child.TryMove(m) == board.GameOver {
			nodes++
			continue
		}
		nodes += e.Perft(child, depth-1)
	}
	return nodes
}

// ValueToString converts a value to a signed stone margin, e.g. "+3".
func ValueToString(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
