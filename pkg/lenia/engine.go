package lenia

import (
	"math"

	"lenia-ca/pkg/core"
)

// Engine advances grids by one or more generations. It keeps only scratch
// buffers between calls, so results depend solely on the arguments. An Engine
// must not be used from several goroutines at once; kernels and growth
// functions may be shared freely.
type Engine struct {
	conv      Convolver
	neighbors []float64
}

// NewEngine returns an engine using conv, or an AutoConvolver when conv is nil.
func NewEngine(conv Convolver) *Engine {
	if conv == nil {
		conv = NewAutoConvolver()
	}
	return &Engine{conv: conv}
}

// Step advances g in place by one generation:
//
//	g' = clamp(g + dt*growth(convolve(g, k)), 0, 1)
//
// The convolution wraps around the grid edges. When the kernel is malformed
// or the convolution or growth output is not finite, Step returns a
// *StepError and g is left unchanged.
func (e *Engine) Step(g *core.Grid, k *Kernel, growth GrowthFunc, dt float64) error {
	return e.step(g, k, growth, dt, 0)
}

// StepBatch applies Step count times in sequence. It stops at the first
// failure; generations completed before it remain applied.
func (e *Engine) StepBatch(g *core.Grid, k *Kernel, growth GrowthFunc, dt float64, count int) error {
	for i := 0; i < count; i++ {
		if err := e.step(g, k, growth, dt, i); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) step(g *core.Grid, k *Kernel, growth GrowthFunc, dt float64, gen int) error {
	if err := k.validate(); err != nil {
		se := err.(*StepError)
		se.Generation = gen
		return se
	}
	if growth == nil {
		return &StepError{Generation: gen, Stage: "growth", Index: -1, Msg: "nil growth function"}
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &StepError{Generation: gen, Stage: "growth", Index: -1, Value: dt, Msg: "non-finite time step"}
	}
	n := g.Len()
	if cap(e.neighbors) < n {
		e.neighbors = make([]float64, n)
	}
	nb := e.neighbors[:n]
	e.conv.Convolve(nb, g, k)
	if i, v, ok := firstNonFinite(nb); !ok {
		return &StepError{Generation: gen, Stage: "convolve", Index: i, Value: v}
	}
	growth.Apply(nb, nb)
	if i, v, ok := firstNonFinite(nb); !ok {
		return &StepError{Generation: gen, Stage: "growth", Index: i, Value: v}
	}
	cells := g.Cells()
	for i, d := range nb {
		cells[i] = clamp01(cells[i] + dt*d)
	}
	return nil
}

func firstNonFinite(vals []float64) (int, float64, bool) {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i, v, false
		}
	}
	return -1, 0, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Step returns the generation after g without modifying g.
func Step(g *core.Grid, k *Kernel, growth GrowthFunc, dt float64) (*core.Grid, error) {
	return StepBatch(g, k, growth, dt, 1)
}

// StepBatch returns the grid count generations after g without modifying g.
func StepBatch(g *core.Grid, k *Kernel, growth GrowthFunc, dt float64, count int) (*core.Grid, error) {
	out := g.Clone()
	if err := NewEngine(nil).StepBatch(out, k, growth, dt, count); err != nil {
		return nil, err
	}
	return out, nil
}
