// Package plot renders the growth function and kernel cross-section of a
// rule as PNG line charts or plain-text tables.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"lenia-ca/pkg/lenia"
)

// ErrNoData is returned when a series has fewer than two points or its X and
// Y slices disagree in length.
var ErrNoData = errors.New("plot: series needs at least two points")

// Series is one line of a chart.
type Series struct {
	Name string
	X, Y []float64
}

// Options controls chart layout.
type Options struct {
	Title         string
	XName, YName  string
	Width, Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 360
	}
	return w, h
}

var lineColors = []drawing.Color{
	{R: 40, G: 120, B: 200, A: 255},
	{R: 220, G: 90, B: 40, A: 255},
	{R: 60, G: 160, B: 80, A: 255},
}

// Lines writes a PNG line chart of series to w.
func Lines(w io.Writer, opts Options, series ...Series) error {
	if len(series) == 0 {
		return ErrNoData
	}
	out := make([]chart.Series, 0, len(series))
	for i, s := range series {
		if len(s.X) < 2 || len(s.X) != len(s.Y) {
			return fmt.Errorf("%w: %q has %d x and %d y values", ErrNoData, s.Name, len(s.X), len(s.Y))
		}
		out = append(out, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: lineColors[i%len(lineColors)],
				StrokeWidth: 2,
			},
		})
	}
	width, height := opts.size()
	yAxis := chart.YAxis{
		Name:  opts.YName,
		Style: chart.Style{FontSize: 10},
	}
	if lo, hi := yBounds(series); lo == hi {
		yAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  opts.XName,
			Style: chart.Style{FontSize: 10},
		},
		YAxis:  yAxis,
		Series: out,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func yBounds(series []Series) (lo, hi float64) {
	lo, hi = series[0].Y[0], series[0].Y[0]
	for _, s := range series {
		for _, v := range s.Y {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// GrowthSeries samples the growth function of p.
func GrowthSeries(p lenia.Params) Series {
	xs, ys := lenia.GrowthSamples(p)
	return Series{Name: fmt.Sprintf("growth (%s)", p.Mode), X: xs, Y: ys}
}

// KernelSeries returns the radial cross-section of k.
func KernelSeries(k *lenia.Kernel) Series {
	ys := k.RadialProfile()
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	return Series{Name: "kernel " + k.Name(), X: xs, Y: ys}
}

// Growth writes the growth curve of p as a PNG.
func Growth(w io.Writer, p lenia.Params) error {
	title := fmt.Sprintf("growth mu=%g sigma=%g", p.GrowthMu, p.GrowthSigma)
	if p.Mode == lenia.Discrete {
		title = "growth (life)"
	}
	return Lines(w, Options{Title: title, XName: "potential", YName: "growth"}, GrowthSeries(p))
}

// Kernel writes the radial profile of the kernel selected by p as a PNG.
func Kernel(w io.Writer, p lenia.Params) error {
	k, err := lenia.KernelFor(p.Mode, p.Mu, p.Sigma, p.Radius)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("kernel mu=%g sigma=%g R=%d", p.Mu, p.Sigma, k.Radius())
	return Lines(w, Options{Title: title, XName: "offset", YName: "weight"}, KernelSeries(k))
}

// Table writes s as two tab-aligned columns.
func Table(w io.Writer, s Series, xName, yName string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", xName, yName)
	for i := range s.X {
		fmt.Fprintf(tw, "%.4f\t%.6f\n", s.X[i], s.Y[i])
	}
	return tw.Flush()
}
