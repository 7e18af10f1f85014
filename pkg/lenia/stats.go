package lenia

import (
	"gonum.org/v1/gonum/floats"

	"lenia-ca/pkg/core"
)

// Stats summarizes a grid.
type Stats struct {
	Min, Max float64
	Mean     float64
	// Mass is the sum of all cell values.
	Mass float64
	// Live counts cells above zero.
	Live int
	// Saturated counts cells at one.
	Saturated int
}

// Measure computes Stats for g.
func Measure(g *core.Grid) Stats {
	cells := g.Cells()
	if len(cells) == 0 {
		return Stats{}
	}
	s := Stats{
		Min:  floats.Min(cells),
		Max:  floats.Max(cells),
		Mass: floats.Sum(cells),
	}
	s.Mean = s.Mass / float64(len(cells))
	for _, v := range cells {
		if v > 0 {
			s.Live++
		}
		if v >= 1 {
			s.Saturated++
		}
	}
	return s
}

// Extinct reports whether every cell is zero.
func (s Stats) Extinct() bool { return s.Live == 0 }

// Saturating reports whether every cell of an n-cell grid is one.
func (s Stats) Saturating(n int) bool { return n > 0 && s.Saturated == n }
