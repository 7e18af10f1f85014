package lenia

import (
	"fmt"
	"math"
	"sort"

	"lenia-ca/pkg/core"
)

// Pattern is a named initial configuration.
type Pattern struct {
	Name        string
	Mode        Mode
	Description string

	place func(g *core.Grid)
}

var patterns = map[string]Pattern{}

func registerPattern(p Pattern) {
	patterns[p.Name] = p
}

// Patterns lists the known patterns sorted by name. "random" is handled by
// Initialize and is not part of the catalog.
func Patterns() []Pattern {
	out := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupPattern returns the pattern registered under name.
func LookupPattern(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return p, nil
}

// RandomPattern is the identifier Initialize uses for uniform random grids.
const RandomPattern = "random"

// Init describes how Initialize populates a fresh grid. An empty Pattern
// selects the mode's default: random for Discrete, stain for Continuous.
type Init struct {
	Pattern          string
	AliveProbability float64
	Seed             int64
}

// Initialize builds a w x h grid for mode from init.
func Initialize(w, h int, mode Mode, init Init) (*core.Grid, error) {
	name := init.Pattern
	if name == "" {
		name = RandomPattern
		if mode == Continuous {
			name = "stain"
		}
	}
	if name == RandomPattern {
		return InitRandom(w, h, init.AliveProbability, init.Seed)
	}
	return InitPattern(w, h, name)
}

// InitRandom sets each cell to 1 with probability p and to 0 otherwise,
// deterministically for a given seed.
func InitRandom(w, h int, p float64, seed int64) (*core.Grid, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, invalidParam("alive_probability", p, "must be within [0, 1]")
	}
	g := core.NewGrid(w, h)
	core.FillBernoulli(core.NewRNG(seed), g.Cells(), p)
	return g, nil
}

// InitPattern places the named pattern into an empty w x h grid. Structured
// patterns start one sixth of the grid width and height from the origin.
func InitPattern(w, h int, name string) (*core.Grid, error) {
	p, err := LookupPattern(name)
	if err != nil {
		return nil, err
	}
	g := core.NewGrid(w, h)
	p.place(g)
	return g, nil
}

// Stamp writes rows into g with the top-left corner at (x0, y0), wrapping
// around the edges.
func Stamp(g *core.Grid, x0, y0 int, rows [][]float64) {
	for y, row := range rows {
		for x, v := range row {
			g.Set(x0+x, y0+y, v)
		}
	}
}

func stampAtSixth(rows [][]float64) func(g *core.Grid) {
	return func(g *core.Grid) {
		Stamp(g, g.W/6, g.H/6, rows)
	}
}

func bits(lines ...string) [][]float64 {
	rows := make([][]float64, len(lines))
	for y, line := range lines {
		rows[y] = make([]float64, len(line))
		for x, c := range line {
			if c == 'O' {
				rows[y][x] = 1
			}
		}
	}
	return rows
}

var gosperGliderGun = bits(
	"........................O...........",
	"......................O.O...........",
	"............OO......OO............OO",
	"...........O...O....OO............OO",
	"OO........O.....O...OO..............",
	"OO........O...O.OO....O.O...........",
	"..........O.....O.......O...........",
	"...........O...O....................",
	"............OO......................",
)

var glider = bits(
	".O.",
	"..O",
	"OOO",
)

var blinker = bits(
	"OOO",
)

// stainRadius is the Gaussian width of the stain in cells. Grids too small
// to hold it use half their smaller side instead.
const stainRadius = 36.0

func placeStain(g *core.Grid) {
	side := g.W
	if g.H < side {
		side = g.H
	}
	radius := math.Max(1, math.Min(stainRadius, float64(side)/2))
	cx, cy := g.W/2, g.H/2
	cells := g.Cells()
	inv := 1 / (radius * radius)
	for y := 0; y < g.H; y++ {
		fy := float64(y - cy)
		for x := 0; x < g.W; x++ {
			fx := float64(x - cx)
			cells[g.Index(x, y)] = math.Exp(-0.5 * (fx*fx + fy*fy) * inv)
		}
	}
}

func init() {
	registerPattern(Pattern{
		Name:        "glider-gun",
		Mode:        Discrete,
		Description: "Gosper glider gun",
		place:       stampAtSixth(gosperGliderGun),
	})
	registerPattern(Pattern{
		Name:        "glider",
		Mode:        Discrete,
		Description: "single glider",
		place:       stampAtSixth(glider),
	})
	registerPattern(Pattern{
		Name:        "blinker",
		Mode:        Discrete,
		Description: "period-2 oscillator",
		place:       stampAtSixth(blinker),
	})
	registerPattern(Pattern{
		Name:        "stain",
		Mode:        Continuous,
		Description: "centered Gaussian spot",
		place:       placeStain,
	})
	registerPattern(Pattern{
		Name:        "orbium",
		Mode:        Continuous,
		Description: "Lenia glider",
		place:       stampAtSixth(orbium),
	})
}
