package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestMoveNotation(t *testing.T) {
	is := is.New(t)
	is.Equal(NewMove(0, 0).String(), "a1")
	is.Equal(NewMove(2, 2).String(), "c3")
	is.Equal(NewMove(4, 0).String(), "a5")
	is.Equal(NewMove(0, 4).String(), "e1")
	is.Equal(Pass.String(), "pass")
	is.Equal(NoMove.String(), "none")
}

func TestParseMoveRoundTrip(t *testing.T) {
	is := is.New(t)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			m := NewMove(r, c)
			got, err := ParseMove(m.String())
			is.NoErr(err)
			is.Equal(got, m)
			is.Equal(got.Row(), r)
			is.Equal(got.Col(), c)
		}
	}
	m, err := ParseMove(" PASS ")
	is.NoErr(err)
	is.True(m.IsPass())
}

func TestParseMoveErrors(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"", "f1", "a0", "a6", "c33", "xx"} {
		_, err := ParseMove(s)
		is.True(errors.Is(err, ErrBadMove))
	}
}
