package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		vals  []int
		mean  float64
		stdev float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, v := range c.vals {
			s.Push(float64(v))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestMinMaxLast(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{3, -7, 12, 0.5} {
		s.Push(v)
	}
	is.Equal(s.Min(), -7.0)
	is.Equal(s.Max(), 12.0)
	is.Equal(s.Last(), 0.5)
	is.Equal(s.Iterations(), 4)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(ZVal(95) > 1.9599)
	is.True(ZVal(95) < 1.9601)
	is.True(ZVal(99) > 2.5757)
	is.True(ZVal(99) < 2.5759)
}
