package engine

import (
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/gothello/internal/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func parse(t *testing.T, rows ...string) *board.Board {
	t.Helper()
	b, err := board.ParseGrid(rows...)
	require.NoError(t, err)
	return b
}

func TestSearchBasic(t *testing.T) {
	b := board.NewBoard()
	eng := NewEngine()
	eng.SetDifficulty(Easy)

	move := eng.Search(b)
	if !move.IsPlacement() {
		t.Errorf("Search returned %s for the empty board", move)
	}
	t.Logf("Best move: %s", move)
}

func TestEmptyBoardNeverPasses(t *testing.T) {
	for depth := 1; depth <= 3; depth++ {
		b := board.NewBoard()
		eng := NewSeededEngine(uint64(depth))
		move := eng.FindBestMove(b, depth)
		assert.True(t, move.IsPlacement(), "depth %d returned %s", depth, move)
		assert.Equal(t, move, b.BestMove)
		assert.True(t, b.IsLegal(move))
	}
}

func TestTieBreakOnlyPicksMaximalMoves(t *testing.T) {
	b := board.NewBoard()
	seen := make(map[board.Move]bool)
	for seed := uint64(0); seed < 20; seed++ {
		eng := NewSeededEngine(seed)
		info := eng.Analyze(b.Clone(), 1)

		require.Len(t, info.Scores, board.NumPoints)
		for _, s := range info.Scores {
			assert.LessOrEqual(t, s.Value, info.Value)
		}
		assert.Contains(t, info.Candidates, info.Move)
		for _, c := range info.Candidates {
			for _, s := range info.Scores {
				if s.Move == c {
					assert.Equal(t, info.Value, s.Value)
				}
			}
		}
		seen[info.Move] = true
	}
	// Every opening move is worth the same, so the choice has to vary.
	assert.Greater(t, len(seen), 1)
}

func TestSeededEngineIsReproducible(t *testing.T) {
	is := is.New(t)
	a := NewSeededEngine(99).FindBestMove(board.NewBoard(), 2)
	b := NewSeededEngine(99).FindBestMove(board.NewBoard(), 2)
	is.Equal(a, b)
}

func TestTakesTheCapture(t *testing.T) {
	b := parse(t,
		".....",
		".....",
		".....",
		".....",
		"WB...",
	)
	eng := NewSeededEngine(1)
	info := eng.Analyze(b, 1)

	a2, _ := board.ParseMove("a2")
	assert.Equal(t, []board.Move{a2}, info.Candidates)
	assert.Equal(t, a2, info.Move)
	assert.Equal(t, 1, info.Value)
}

func TestNoLegalMovesPasses(t *testing.T) {
	b := parse(t,
		"BBBBB",
		"BBBBB",
		"BB.BB",
		"BBBBB",
		"BBBBB",
	)
	b.SideToMove = board.White
	eng := NewSeededEngine(1)
	move := eng.FindBestMove(b, 3)
	assert.Equal(t, board.Pass, move)
	assert.Equal(t, board.Pass, b.BestMove)
}

func TestForcedPassAfterPassEndsSearch(t *testing.T) {
	b := parse(t,
		"BBBBB",
		"BBBBB",
		"BB.BB",
		"BBBBB",
		"BBBBB",
	)
	b.SideToMove = board.White
	b.PreviousMove = board.Pass

	s := NewSearcher(NewTranspositionTableWithKeys(board.NewSeededZobrist(3)))
	// White must pass, which ends the game with White 24 stones down.
	assert.Equal(t, -24, s.Negamax(b, 2, -Infinity, Infinity))
	assert.Equal(t, -24, fullWidth(b, 2))
}

func TestSearchWithLimitsMoveTime(t *testing.T) {
	b := board.NewBoard()
	eng := NewSeededEngine(5)
	var depths []int
	eng.OnInfo = func(info SearchInfo) {
		depths = append(depths, info.Depth)
	}
	move := eng.SearchWithLimits(b, SearchLimits{Depth: 3, MoveTime: 5 * time.Second})
	assert.True(t, move.IsPlacement())
	require.NotEmpty(t, depths)
	assert.Equal(t, 1, depths[0])
	for i := 1; i < len(depths); i++ {
		assert.Equal(t, depths[i-1]+1, depths[i])
	}
}

func TestClearResetsTable(t *testing.T) {
	is := is.New(t)
	eng := NewSeededEngine(8)
	eng.FindBestMove(board.NewBoard(), 2)
	is.True(eng.Table().Len() > 0)
	eng.Clear()
	is.Equal(eng.Table().Len(), 0)
	is.Equal(eng.Table().Stats().Probes, uint64(0))
}

func TestPerft(t *testing.T) {
	is := is.New(t)
	eng := NewEngine()
	is.Equal(eng.Perft(board.NewBoard(), 1), uint64(25))
	is.Equal(eng.Perft(board.NewBoard(), 2), uint64(600))
}

func TestDifficulty(t *testing.T) {
	is := is.New(t)
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		got, ok := ParseDifficulty(d.String())
		is.True(ok)
		is.Equal(got, d)
		is.True(DifficultySettings[d].Depth >= 1)
	}
	_, ok := ParseDifficulty("impossible")
	is.True(!ok)
	is.Equal(ValueToString(3), "+3")
	is.Equal(ValueToString(-2), "-2")
	is.Equal(ValueToString(0), "0")
}

func TestSearchFollowsDifficulty(t *testing.T) {
	b := parse(t,
		"BW.BW",
		"WB.WB",
		"BW.BW",
		"WB.WB",
		"BW.BW",
	)
	eng := NewSeededEngine(9)
	var depth int
	eng.OnInfo = func(info SearchInfo) { depth = info.Depth }

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		eng.SetDifficulty(d)
		assert.Equal(t, d, eng.Difficulty())
		m := eng.Search(b.Clone())
		assert.True(t, b.IsLegal(m), "%s returned %s", d, m)
		assert.Equal(t, DifficultySettings[d].Depth, depth, d.String())
	}
}
