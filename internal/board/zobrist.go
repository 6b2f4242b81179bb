package board

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// Zobrist holds the random keys used to hash positions.
// Every (point, color) pair gets an independently drawn key; two more keys
// distinguish White to move and a pending pass.
type Zobrist struct {
	points      [NumPoints][2]uint64
	sideToMove  uint64
	passPending uint64
}

// NewZobrist draws a fresh key set from the process-wide random source.
func NewZobrist() *Zobrist {
	return newZobrist(frand.Uint64n)
}

// NewSeededZobrist draws a reproducible key set from seed.
func NewSeededZobrist(seed uint64) *Zobrist {
	return newZobrist(SeededRNG(seed).Uint64n)
}

func newZobrist(draw func(uint64) uint64) *Zobrist {
	z := &Zobrist{}
	for i := 0; i < NumPoints; i++ {
		for j := 0; j < 2; j++ {
			z.points[i][j] = draw(bignum) + 1
		}
	}
	z.sideToMove = draw(bignum) + 1
	z.passPending = draw(bignum) + 1
	return z
}

// SeededRNG returns a deterministic ChaCha-based generator for seed.
func SeededRNG(seed uint64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return frand.NewCustom(key, 1024, 12)
}

// PointKey returns the key for a stone of color c at (row, col).
func (z *Zobrist) PointKey(row, col int, c Color) uint64 {
	mustBeOnBoard(row, col)
	return z.points[row*Size+col][c-Black]
}

// HashGrid XORs together the keys of every occupied point.
func (z *Zobrist) HashGrid(g *Grid) uint64 {
	key := uint64(0)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if color := g[r][c]; color != Empty {
				key ^= z.points[r*Size+c][color-Black]
			}
		}
	}
	return key
}

// Hash returns the key of a full position: the grid, the side to move and
// whether the previous move was a pass. Positions that share a grid but can
// end differently never share a key.
func (z *Zobrist) Hash(b *Board) uint64 {
	key := z.HashGrid(&b.grid)
	if b.SideToMove == White {
		key ^= z.sideToMove
	}
	if b.PreviousMove == Pass {
		key ^= z.passPending
	}
	return key
}
