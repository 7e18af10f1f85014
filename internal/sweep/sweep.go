// Package sweep explores growth parameters in parallel and ranks the
// resulting runs by how much of the initial mass they keep alive.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"lenia-ca/internal/logging"
	"lenia-ca/pkg/lenia"
	"lenia-ca/pkg/sims/automaton"
)

// Point is one (growth_mu, growth_sigma) candidate.
type Point struct {
	GrowthMu    float64
	GrowthSigma float64
}

func (p Point) String() string {
	return fmt.Sprintf("growth_mu=%.4f growth_sigma=%.4f", p.GrowthMu, p.GrowthSigma)
}

// Result is the outcome of one scenario.
type Result struct {
	Point
	Initial lenia.Stats
	Final   lenia.Stats
	// MassRatio is final mass over initial mass.
	MassRatio float64
	// Steps is the number of generations actually run; extinct runs stop early.
	Steps int
}

// Survived reports whether the run ended neither extinct nor saturated.
func (r Result) Survived(cells int) bool {
	return !r.Final.Extinct() && !r.Final.Saturating(cells)
}

// Options configures a sweep.
type Options struct {
	// Base is the automaton configuration each scenario starts from.
	Base    automaton.Config
	Steps   int
	Workers int
	Logger  *slog.Logger
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Grid returns the cross product of mus and sigmas.
func Grid(mus, sigmas []float64) []Point {
	out := make([]Point, 0, len(mus)*len(sigmas))
	for _, mu := range mus {
		for _, sigma := range sigmas {
			out = append(out, Point{GrowthMu: mu, GrowthSigma: sigma})
		}
	}
	return out
}

// Run evaluates every point and returns the results ranked best first. The
// first scenario error cancels the remaining work.
func Run(ctx context.Context, opts Options, points []Point) ([]Result, error) {
	if opts.Steps <= 0 {
		return nil, fmt.Errorf("sweep: steps must be positive, got %d", opts.Steps)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Info("sweep started", "points", len(points), "workers", workers, "steps", opts.Steps)

	results := make([]Result, len(points))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pt := range points {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runScenario(ctx, opts.Base, pt, opts.Steps)
			if err != nil {
				return fmt.Errorf("%s: %w", pt, err)
			}
			results[i] = res
			logger.Debug("scenario done", "point", pt.String(), "mass_ratio", res.MassRatio, "steps", res.Steps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	Rank(results, opts.Base.Width*opts.Base.Height)
	return results, nil
}

func runScenario(ctx context.Context, base automaton.Config, pt Point, steps int) (Result, error) {
	cfg := base
	cfg.Params.GrowthMu = pt.GrowthMu
	cfg.Params.GrowthSigma = pt.GrowthSigma
	a, err := automaton.New(cfg)
	if err != nil {
		return Result{}, err
	}
	res := Result{Point: pt, Initial: a.Stats()}
	for res.Steps < steps {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := a.Step(); err != nil {
			return Result{}, err
		}
		res.Steps++
		if a.Stats().Extinct() {
			break
		}
	}
	res.Final = a.Stats()
	if res.Initial.Mass > 0 {
		res.MassRatio = res.Final.Mass / res.Initial.Mass
	}
	return res, nil
}

// Rank orders results in place: surviving runs first, then by how close the
// mass ratio is to one, then by point for stable output.
func Rank(results []Result, cells int) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if sa, sb := a.Survived(cells), b.Survived(cells); sa != sb {
			return sa
		}
		da, db := massDistance(a.MassRatio), massDistance(b.MassRatio)
		if da != db {
			return da < db
		}
		if a.GrowthMu != b.GrowthMu {
			return a.GrowthMu < b.GrowthMu
		}
		return a.GrowthSigma < b.GrowthSigma
	})
}

func massDistance(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(1)
	}
	return math.Abs(math.Log(ratio))
}
