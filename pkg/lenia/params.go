package lenia

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects between the discrete and continuous automaton.
type Mode int

const (
	// Discrete is the Game of Life: Moore kernel, piecewise growth, dt = 1.
	Discrete Mode = iota
	// Continuous is Lenia: ring kernel, Gaussian growth, small dt.
	Continuous
)

func (m Mode) String() string {
	switch m {
	case Discrete:
		return "discrete"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "discrete"/"life"/"gol" and "continuous"/"lenia".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "discrete", "life", "gol":
		return Discrete, nil
	case "continuous", "lenia":
		return Continuous, nil
	default:
		return Discrete, fmt.Errorf("%w: mode %q (valid: discrete, continuous)", ErrInvalidParameter, s)
	}
}

const (
	DefaultMu               = 0.5
	DefaultSigma            = 0.15
	DefaultGrowthMu         = 0.15
	DefaultGrowthSigma      = 0.015
	DefaultRadius           = 13
	DefaultAliveProbability = 0.2

	// ContinuousTimeStep is the canonical Lenia integration step.
	ContinuousTimeStep = 0.1
	// DiscreteTimeStep recovers one full Game of Life generation per step.
	DiscreteTimeStep = 1.0
)

// Params is the full parameter set of a simulation. The engine never
// mutates it; callers own it and pass it by value.
type Params struct {
	Mu          float64
	Sigma       float64
	GrowthMu    float64
	GrowthSigma float64
	Radius      int
	TimeStep    float64
	Mode        Mode
}

// DefaultParams returns the canonical parameters for mode.
func DefaultParams(mode Mode) Params {
	return Params{
		Mu:          DefaultMu,
		Sigma:       DefaultSigma,
		GrowthMu:    DefaultGrowthMu,
		GrowthSigma: DefaultGrowthSigma,
		Radius:      DefaultRadius,
		TimeStep:    TimeStepFor(mode),
		Mode:        mode,
	}
}

// Validate rejects values that would make kernel or growth evaluation divide
// by zero or produce non-finite output.
func (p Params) Validate() error {
	if p.Mode != Discrete && p.Mode != Continuous {
		return fmt.Errorf("%w: mode %d", ErrInvalidParameter, int(p.Mode))
	}
	if err := checkSigma("sigma", p.Sigma); err != nil {
		return err
	}
	if err := checkSigma("growth_sigma", p.GrowthSigma); err != nil {
		return err
	}
	if err := checkFinite("mu", p.Mu); err != nil {
		return err
	}
	if err := checkFinite("growth_mu", p.GrowthMu); err != nil {
		return err
	}
	if p.Radius < 1 {
		return invalidParam("radius", float64(p.Radius), "must be at least 1")
	}
	if !(p.TimeStep > 0) || math.IsInf(p.TimeStep, 0) {
		return invalidParam("time_step", p.TimeStep, "must be positive")
	}
	return nil
}

func checkSigma(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return invalidParam(name, v, "must be positive")
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidParam(name, v, "must be finite")
	}
	return nil
}

// TimeStepFor returns the canonical time step of mode.
func TimeStepFor(mode Mode) float64 {
	if mode == Continuous {
		return ContinuousTimeStep
	}
	return DiscreteTimeStep
}

// KernelFor returns the neighborhood kernel for mode. The discrete kernel
// ignores mu, sigma and radius.
func KernelFor(mode Mode, mu, sigma float64, radius int) (*Kernel, error) {
	if mode == Continuous {
		return RingKernel(mu, sigma, radius)
	}
	return MooreKernel(), nil
}

// GrowthFor returns the growth function for mode. The discrete function
// ignores mu and sigma.
func GrowthFor(mode Mode, mu, sigma float64) GrowthFunc {
	if mode == Continuous {
		return LeniaGrowth(mu, sigma)
	}
	return GameOfLifeGrowth
}

// Rule is the (kernel, growth, dt) triple consumed by Engine.Step. It is
// selected once per configuration change.
type Rule struct {
	Kernel   *Kernel
	Growth   GrowthFunc
	TimeStep float64
}

// RuleFor validates p and builds its rule.
func RuleFor(p Params) (Rule, error) {
	if err := p.Validate(); err != nil {
		return Rule{}, err
	}
	k, err := KernelFor(p.Mode, p.Mu, p.Sigma, p.Radius)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Kernel: k, Growth: GrowthFor(p.Mode, p.GrowthMu, p.GrowthSigma), TimeStep: p.TimeStep}, nil
}

// GrowthSamples evaluates the growth function of p over the range plotted
// for its mode: [0, 0.3) in steps of 0.001 for continuous, 0..8 for discrete.
func GrowthSamples(p Params) (xs, ys []float64) {
	fn := GrowthFor(p.Mode, p.GrowthMu, p.GrowthSigma)
	if p.Mode == Continuous {
		for i := 0; i < 300; i++ {
			xs = append(xs, float64(i)*0.001)
		}
	} else {
		for i := 0; i <= 8; i++ {
			xs = append(xs, float64(i))
		}
	}
	ys = make([]float64, len(xs))
	fn.Apply(ys, xs)
	return xs, ys
}
