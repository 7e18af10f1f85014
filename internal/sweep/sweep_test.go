package sweep

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"lenia-ca/pkg/lenia"
	"lenia-ca/pkg/sims/automaton"
)

func smallBase() automaton.Config {
	cfg := automaton.DefaultConfig(lenia.Continuous)
	cfg.Width, cfg.Height = 24, 24
	cfg.Params.Radius = 4
	cfg.Pattern = lenia.RandomPattern
	cfg.AliveProbability = 0.5
	return cfg
}

func TestLinspace(t *testing.T) {
	c := qt.New(t)
	c.Assert(Linspace(0, 1, 0), qt.IsNil)
	c.Assert(Linspace(0.2, 1, 1), qt.DeepEquals, []float64{0.2})
	got := Linspace(0, 1, 5)
	c.Assert(got, qt.HasLen, 5)
	c.Assert(got[0], qt.Equals, 0.0)
	c.Assert(got[2], qt.Equals, 0.5)
	c.Assert(got[4], qt.Equals, 1.0)
}

func TestGrid(t *testing.T) {
	c := qt.New(t)
	pts := Grid([]float64{0.1, 0.2}, []float64{0.01, 0.02, 0.03})
	c.Assert(pts, qt.HasLen, 6)
	c.Assert(pts[0], qt.Equals, Point{GrowthMu: 0.1, GrowthSigma: 0.01})
	c.Assert(pts[5], qt.Equals, Point{GrowthMu: 0.2, GrowthSigma: 0.03})
}

func TestRank(t *testing.T) {
	c := qt.New(t)
	cells := 4
	results := []Result{
		{Point: Point{GrowthMu: 0.1}, MassRatio: 0, Final: lenia.Stats{}},
		{Point: Point{GrowthMu: 0.2}, MassRatio: 2, Final: lenia.Stats{Live: 4, Saturated: 4}},
		{Point: Point{GrowthMu: 0.3}, MassRatio: 0.5, Final: lenia.Stats{Live: 2}},
		{Point: Point{GrowthMu: 0.4}, MassRatio: 1.1, Final: lenia.Stats{Live: 3}},
	}
	Rank(results, cells)
	order := make([]float64, len(results))
	for i, r := range results {
		order[i] = r.GrowthMu
	}
	c.Assert(order, qt.DeepEquals, []float64{0.4, 0.3, 0.2, 0.1})
}

func TestRunRejectsNonPositiveSteps(t *testing.T) {
	c := qt.New(t)
	_, err := Run(context.Background(), Options{Base: smallBase()}, nil)
	c.Assert(err, qt.ErrorMatches, `sweep: steps must be positive.*`)
}

func TestRunExtinctStopsEarly(t *testing.T) {
	c := qt.New(t)
	pts := []Point{{GrowthMu: 0.9, GrowthSigma: 0.01}}
	results, err := Run(context.Background(), Options{Base: smallBase(), Steps: 40, Workers: 1}, pts)
	c.Assert(err, qt.IsNil)
	c.Assert(results, qt.HasLen, 1)
	r := results[0]
	c.Assert(r.Final.Extinct(), qt.IsTrue)
	c.Assert(r.MassRatio, qt.Equals, 0.0)
	c.Assert(r.Steps <= 11, qt.IsTrue, qt.Commentf("steps = %d", r.Steps))
	c.Assert(r.Initial.Mass > 0, qt.IsTrue)
}

func TestRunDeterministic(t *testing.T) {
	c := qt.New(t)
	pts := Grid([]float64{0.15, 0.3}, []float64{0.015, 0.05})
	opts := Options{Base: smallBase(), Steps: 5, Workers: 3}
	a, err := Run(context.Background(), opts, pts)
	c.Assert(err, qt.IsNil)
	b, err := Run(context.Background(), opts, pts)
	c.Assert(err, qt.IsNil)
	c.Assert(a, qt.HasLen, len(pts))
	c.Assert(a, qt.DeepEquals, b)
}

func TestRunInvalidPoint(t *testing.T) {
	c := qt.New(t)
	pts := []Point{{GrowthMu: 0.15, GrowthSigma: -1}}
	_, err := Run(context.Background(), Options{Base: smallBase(), Steps: 3}, pts)
	c.Assert(err, qt.ErrorMatches, `growth_mu=0.1500 growth_sigma=-1.0000: .*`)
}

func TestRunCancelled(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Base: smallBase(), Steps: 3}, Grid([]float64{0.15}, []float64{0.015}))
	c.Assert(err, qt.ErrorIs, context.Canceled)
}
