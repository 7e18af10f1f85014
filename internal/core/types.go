package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
// Cells holds one value in [0, 1] per cell in row-major order.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() error
	Cells() []float64
}

// BatchStepper is implemented by sims that can advance several generations
// per call. It returns the number of generations completed, which is less
// than count only when err is non-nil.
type BatchStepper interface {
	StepBatch(count int) (int, error)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	out := make([]string, 0, len(sims))
	for name := range sims {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New looks up name in the registry and builds it with cfg.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, Names())
	}
	return f(cfg)
}

// Advance runs count generations on s, using StepBatch when s supports it,
// and returns how many completed before any failure.
func Advance(s Sim, count int) (int, error) {
	if b, ok := s.(BatchStepper); ok {
		return b.StepBatch(count)
	}
	for i := 0; i < count; i++ {
		if err := s.Step(); err != nil {
			return i, err
		}
	}
	return count, nil
}
