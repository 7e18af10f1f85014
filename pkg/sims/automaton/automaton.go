package automaton

import (
	"fmt"

	simcore "lenia-ca/internal/core"
	"lenia-ca/pkg/core"
	"lenia-ca/pkg/lenia"
)

// Automaton couples a grid with the rule selected from its parameters. It is
// the single writer of its grid; callers must not step it concurrently.
type Automaton struct {
	name   string
	cfg    Config
	params lenia.Params
	rule   lenia.Rule
	grid   *core.Grid
	engine *lenia.Engine

	generation int
	resetErr   error
}

// New validates cfg, builds the rule and initializes the grid.
func New(cfg Config) (*Automaton, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rule, err := lenia.RuleFor(cfg.Params)
	if err != nil {
		return nil, err
	}
	conv, err := lenia.ParseConvolver(cfg.Convolver)
	if err != nil {
		return nil, err
	}
	grid, err := lenia.Initialize(cfg.Width, cfg.Height, cfg.Params.Mode, cfg.Init())
	if err != nil {
		return nil, err
	}
	return &Automaton{
		name:   nameFor(cfg.Params.Mode),
		cfg:    cfg,
		params: cfg.Params,
		rule:   rule,
		grid:   grid,
		engine: lenia.NewEngine(conv),
	}, nil
}

func nameFor(mode lenia.Mode) string {
	if mode == lenia.Continuous {
		return "lenia"
	}
	return "life"
}

// Name returns the simulation identifier, "life" or "lenia" by mode.
func (a *Automaton) Name() string { return a.name }

// Size returns the grid dimensions.
func (a *Automaton) Size() simcore.Size { return simcore.Size{W: a.grid.W, H: a.grid.H} }

// Cells exposes the current grid values.
func (a *Automaton) Cells() []float64 { return a.grid.Cells() }

// Grid returns the live grid. It is only valid until the next Reset.
func (a *Automaton) Grid() *core.Grid { return a.grid }

// Params returns a copy of the current parameters.
func (a *Automaton) Params() lenia.Params { return a.params }

// Rule returns the kernel, growth function and time step in use.
func (a *Automaton) Rule() lenia.Rule { return a.rule }

// Config returns the configuration with the current parameters applied.
func (a *Automaton) Config() Config {
	c := a.cfg
	c.Params = a.params
	return c
}

// Generation counts steps since the last reset.
func (a *Automaton) Generation() int { return a.generation }

// Stats summarizes the current grid.
func (a *Automaton) Stats() lenia.Stats { return lenia.Measure(a.grid) }

// Reset reinitializes the grid from the configured pattern with seed. If
// initialization fails the current grid is kept and the error is returned by
// the next Step.
func (a *Automaton) Reset(seed int64) {
	a.cfg.Seed = seed
	a.resetErr = a.Initialize(a.cfg.Init())
}

// Initialize replaces the grid with a fresh one built from init. On error
// the current grid is kept.
func (a *Automaton) Initialize(init lenia.Init) error {
	grid, err := lenia.Initialize(a.cfg.Width, a.cfg.Height, a.params.Mode, init)
	if err != nil {
		return err
	}
	a.cfg.Pattern = init.Pattern
	a.cfg.AliveProbability = init.AliveProbability
	a.cfg.Seed = init.Seed
	a.grid = grid
	a.generation = 0
	a.resetErr = nil
	return nil
}

// SetPattern switches the pattern used by subsequent resets.
func (a *Automaton) SetPattern(name string) error {
	if name != "" && name != lenia.RandomPattern {
		if _, err := lenia.LookupPattern(name); err != nil {
			return err
		}
	}
	a.cfg.Pattern = name
	return nil
}

// Step advances the grid by one generation.
func (a *Automaton) Step() error {
	if a.resetErr != nil {
		return fmt.Errorf("%s reset: %w", a.name, a.resetErr)
	}
	if err := a.engine.Step(a.grid, a.rule.Kernel, a.rule.Growth, a.rule.TimeStep); err != nil {
		return fmt.Errorf("%s generation %d: %w", a.name, a.generation, err)
	}
	a.generation++
	return nil
}

// StepBatch advances count generations in sequence, stopping at the first
// failure, and returns how many completed.
func (a *Automaton) StepBatch(count int) (int, error) {
	for i := 0; i < count; i++ {
		if err := a.Step(); err != nil {
			return i, err
		}
	}
	return count, nil
}

// apply validates next, rebuilds the rule and swaps both in. The automaton is
// unchanged on error.
func (a *Automaton) apply(next lenia.Params) error {
	rule, err := lenia.RuleFor(next)
	if err != nil {
		return err
	}
	a.params = next
	a.rule = rule
	a.name = nameFor(next.Mode)
	return nil
}

// SetKernelParams updates the ring mu and sigma. Nil arguments keep the
// current value. The kernel is rebuilt before the next step.
func (a *Automaton) SetKernelParams(mu, sigma *float64) error {
	next := a.params
	if mu != nil {
		next.Mu = *mu
	}
	if sigma != nil {
		next.Sigma = *sigma
	}
	return a.apply(next)
}

// SetGrowthParams updates the growth mu and sigma. Nil arguments keep the
// current value.
func (a *Automaton) SetGrowthParams(mu, sigma *float64) error {
	next := a.params
	if mu != nil {
		next.GrowthMu = *mu
	}
	if sigma != nil {
		next.GrowthSigma = *sigma
	}
	return a.apply(next)
}

// SetRadius changes the ring kernel radius.
func (a *Automaton) SetRadius(r int) error {
	next := a.params
	next.Radius = r
	return a.apply(next)
}

// SetTimeStep overrides the integration step of the current mode.
func (a *Automaton) SetTimeStep(dt float64) error {
	next := a.params
	next.TimeStep = dt
	return a.apply(next)
}

// SetMode switches between the discrete and continuous rule. The grid is
// kept and the time step reverts to the mode's canonical value.
func (a *Automaton) SetMode(mode lenia.Mode) error {
	next := a.params
	next.Mode = mode
	next.TimeStep = lenia.TimeStepFor(mode)
	return a.apply(next)
}

// ToggleMode flips between discrete and continuous.
func (a *Automaton) ToggleMode() error {
	if a.params.Mode == lenia.Continuous {
		return a.SetMode(lenia.Discrete)
	}
	return a.SetMode(lenia.Continuous)
}

func factory(mode lenia.Mode) simcore.Factory {
	return func(cfg map[string]string) (simcore.Sim, error) {
		a, err := New(FromMap(mode, cfg))
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}

func init() {
	simcore.Register("life", factory(lenia.Discrete))
	simcore.Register("lenia", factory(lenia.Continuous))
}

// GrowthCurve samples the current growth function over its plotted range.
func (a *Automaton) GrowthCurve() (xs, ys []float64) { return lenia.GrowthSamples(a.params) }

// KernelProfile returns the radial cross-section of the current kernel.
func (a *Automaton) KernelProfile() []float64 { return a.rule.Kernel.RadialProfile() }
