package board

import (
	"testing"

	"github.com/matryer/is"
)

func mustParse(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := ParseGrid(rows...)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return b
}

func mv(t *testing.T, s string) Move {
	t.Helper()
	m, err := ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

func TestNewBoard(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(b.SideToMove, Black)
	is.Equal(b.PreviousMove, NoMove)
	is.Equal(b.Count(Empty), NumPoints)
	is.Equal(b.Evaluate(), 0)
}

func TestLibertiesSingleStone(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.Set(2, 2, Black)
	is.Equal(b.Liberties(2, 2), 4)
	b.Set(0, 0, White)
	is.Equal(b.Liberties(0, 0), 2)
	b.Set(0, 2, White)
	is.Equal(b.Liberties(0, 2), 3)
}

func TestLibertiesGroupCountsSharedPointsOnce(t *testing.T) {
	is := is.New(t)
	b := mustParse(t,
		".....",
		".....",
		".BB..",
		".B...",
		".....",
	)
	// group b3 c3 b2; liberties a3 b4 c4 d3 c2 a2 b1
	is.Equal(b.Liberties(2, 1), 7)
	is.Equal(b.Liberties(1, 1), 7)
	is.Equal(b.GroupSize(2, 2), 3)
}

func TestLibertiesSurroundedIsZero(t *testing.T) {
	is := is.New(t)
	b := mustParse(t,
		".....",
		"..W..",
		".WBW.",
		"..W..",
		".....",
	)
	is.Equal(b.Liberties(2, 2), 0)
	is.Equal(b.Liberties(3, 2), 3)
}

func TestSurroundedPointIsIllegal(t *testing.T) {
	is := is.New(t)
	// Every white stone keeps outside liberties, so black at c3 captures nothing.
	b := mustParse(t,
		".....",
		"..W..",
		".W.W.",
		"..W..",
		".....",
	)
	c3 := mv(t, "c3")
	is.True(!b.IsLegal(c3))
	for _, m := range b.LegalMoves() {
		is.True(m != c3)
	}
	is.Equal(len(b.LegalMoves()), NumPoints-5)

	// White may fill its own eye.
	b.SideToMove = White
	is.True(b.IsLegal(c3))
}

func TestSuicideCheckedBeforeCaptures(t *testing.T) {
	is := is.New(t)
	// The white stone at a2 is in atari, but black a1 still has no liberty of
	// its own before captures are resolved, so it stays illegal.
	b := mustParse(t,
		".....",
		".....",
		"B....",
		"WB...",
		".W...",
	)
	is.Equal(b.Liberties(1, 0), 1)
	is.True(!b.IsLegal(mv(t, "a1")))
}

func TestCaptureSingleStone(t *testing.T) {
	is := is.New(t)
	b := mustParse(t,
		".....",
		".....",
		".....",
		".....",
		"WB..W",
	)
	is.Equal(b.TryMove(mv(t, "a2")), Continue)
	is.Equal(b.At(0, 0), Empty)
	is.Equal(b.At(0, 1), Black)
	is.Equal(b.At(1, 0), Black)
	is.Equal(b.At(0, 4), White)
	is.Equal(b.SideToMove, White)
	is.Equal(b.PreviousMove, mv(t, "a2"))
}

func TestCaptureRemovesWholeGroupOnly(t *testing.T) {
	is := is.New(t)
	b := mustParse(t,
		".....",
		".....",
		"B..W.",
		"WWB..",
		"WB...",
	)
	is.Equal(b.Liberties(1, 0), 1) // b3 is the group's last liberty
	is.Equal(b.GroupSize(1, 0), 3)

	is.Equal(b.TryMove(mv(t, "b3")), Continue)
	is.Equal(b.At(1, 0), Empty)
	is.Equal(b.At(1, 1), Empty)
	is.Equal(b.At(0, 0), Empty)
	is.Equal(b.At(2, 3), White)
	is.Equal(b.Count(White), 1)
	is.Equal(b.Count(Black), 4)
}

func TestCaptureTwoGroupsAtOnce(t *testing.T) {
	is := is.New(t)
	b := mustParse(t,
		".....",
		".....",
		"B.B..",
		"W.WB.",
		"B.B..",
	)
	is.Equal(b.Liberties(1, 0), 1)
	is.Equal(b.Liberties(1, 2), 1)

	b.TryMove(mv(t, "b2"))
	is.Equal(b.At(1, 0), Empty)
	is.Equal(b.At(1, 2), Empty)
	is.Equal(b.Count(White), 0)
	is.Equal(b.Liberties(1, 1), 4)
}

func TestDoublePassEndsGame(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.TryMove(mv(t, "c3"))
	grid := b.Grid()

	is.Equal(b.TryMove(Pass), Continue)
	is.Equal(b.SideToMove, Black)
	is.Equal(b.PreviousMove, Pass)

	is.Equal(b.TryMove(Pass), GameOver)
	is.Equal(b.Grid(), grid)
	is.Equal(b.SideToMove, Black)
	is.Equal(b.PreviousMove, Pass)
}

func TestPassThenPlacementContinues(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(b.TryMove(Pass), Continue)
	is.Equal(b.TryMove(mv(t, "a1")), Continue)
	is.Equal(b.TryMove(Pass), Continue)
	is.Equal(b.SideToMove, White)
}

func TestEvaluate(t *testing.T) {
	is := is.New(t)
	b := mustParse(t,
		"BB...",
		".....",
		"..W..",
		".....",
		"B....",
	)
	is.Equal(b.Evaluate(), 2)
	b.SideToMove = White
	is.Equal(b.Evaluate(), -2)
	is.Equal(b.Winner(), Black)
}

func TestCloneIsIndependent(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	c := b.Clone()
	c.TryMove(mv(t, "a1"))
	is.Equal(b.At(0, 0), Empty)
	is.Equal(b.SideToMove, Black)
	is.Equal(c.At(0, 0), Black)
}

func TestOffBoardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for off-board point")
		}
	}()
	NewBoard().Liberties(5, 0)
}

func TestParseGridErrors(t *testing.T) {
	is := is.New(t)
	_, err := ParseGrid(".....")
	is.True(err != nil)
	_, err = ParseGrid(".....", ".....", "..?..", ".....", ".....")
	is.True(err != nil)
}

func TestBoardString(t *testing.T) {
	b := NewBoard()
	b.TryMove(NewMove(0, 0))
	want := "5 . . . . .\n" +
		"4 . . . . .\n" +
		"3 . . . . .\n" +
		"2 . . . . .\n" +
		"1 B . . . .\n" +
		"  a b c d e\n" +
		"to move: white"
	if got := b.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
