package count

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/countsim/deck"
	"github.com/domino14/countsim/stats"
)

func TestRunningCount(t *testing.T) {
	is := is.New(t)
	tr := &Tracker{}
	tr.Update(deck.Seven)
	is.Equal(tr.Running(), 0)
	tr.Update(deck.Two)
	is.Equal(tr.Running(), 1)
	tr.Update(deck.King)
	is.Equal(tr.Running(), 0)
	tr.Update(deck.Five)
	tr.Update(deck.Six)
	is.Equal(tr.Running(), 2)
	tr.Reset()
	is.Equal(tr.Running(), 0)
}

func TestTrueCount(t *testing.T) {
	is := is.New(t)
	type tc struct {
		running   int
		remaining int
		want      float64
	}
	cases := []tc{
		// two decks remaining
		{6, 104, 3},
		// half a deck remaining: the divisor drops below 1 and the
		// magnitude grows
		{2, 26, 4},
		{-4, 52, -4},
		{0, 208, 0},
		// division-by-zero guard
		{5, 0, 0},
	}
	for _, c := range cases {
		tr := &Tracker{running: c.running}
		is.True(stats.FuzzyEqual(tr.TrueCount(c.remaining), c.want))
	}
}
