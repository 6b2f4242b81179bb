package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestZobristSeededIsReproducible(t *testing.T) {
	is := is.New(t)
	z1 := NewSeededZobrist(42)
	z2 := NewSeededZobrist(42)
	z3 := NewSeededZobrist(43)

	b := NewBoard()
	b.TryMove(NewMove(2, 2))
	b.TryMove(NewMove(0, 1))

	is.Equal(z1.Hash(b), z2.Hash(b))
	is.True(z1.Hash(b) != z3.Hash(b))
}

func TestZobristKeysAreNonZeroAndDistinct(t *testing.T) {
	is := is.New(t)
	z := NewZobrist()
	seen := make(map[uint64]bool)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			for _, color := range []Color{Black, White} {
				k := z.PointKey(r, c, color)
				is.True(k != 0)
				is.True(!seen[k])
				seen[k] = true
			}
		}
	}
}

func TestHashGridIsOrderIndependent(t *testing.T) {
	is := is.New(t)
	z := NewSeededZobrist(7)

	a := NewBoard()
	a.Set(0, 0, Black)
	a.Set(3, 4, White)

	b := NewBoard()
	b.Set(3, 4, White)
	b.Set(0, 0, Black)

	ga, gb := a.Grid(), b.Grid()
	is.Equal(z.HashGrid(&ga), z.HashGrid(&gb))
	is.Equal(z.HashGrid(&ga), z.PointKey(0, 0, Black)^z.PointKey(3, 4, White))

	empty := NewBoard().Grid()
	is.Equal(z.HashGrid(&empty), uint64(0))
}

func TestHashDistinguishesSideAndPendingPass(t *testing.T) {
	is := is.New(t)
	z := NewSeededZobrist(7)

	b := NewBoard()
	b.TryMove(NewMove(1, 1))
	white := z.Hash(b)

	passed := b.Clone()
	passed.TryMove(Pass) // same grid, black to move, pass pending
	black := b.Clone()
	black.SideToMove = Black

	is.True(white != z.Hash(black))
	is.True(z.Hash(black) != z.Hash(passed))
	g := b.Grid()
	is.Equal(z.Hash(black), z.HashGrid(&g))
}
