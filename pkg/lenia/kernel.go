package lenia

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kernel is an immutable square neighborhood mask with odd side 2R+1.
// The zero value is an empty kernel and is rejected by the engine.
type Kernel struct {
	radius  int
	weights []float64

	// ring parameters, zero for fixed masks
	mu, sigma float64
	name      string
}

// Radius returns R for a kernel of side 2R+1.
func (k *Kernel) Radius() int { return k.radius }

// Size returns the side length of the kernel.
func (k *Kernel) Size() int {
	if k == nil || len(k.weights) == 0 {
		return 0
	}
	return 2*k.radius + 1
}

// Name identifies how the kernel was built ("ring", "moore" or "custom").
func (k *Kernel) Name() string { return k.name }

// At returns the weight at offset (dx, dy) from the center, both in [-R, R].
func (k *Kernel) At(dx, dy int) float64 {
	if dx < -k.radius || dx > k.radius || dy < -k.radius || dy > k.radius {
		return 0
	}
	side := 2*k.radius + 1
	return k.weights[(dy+k.radius)*side+dx+k.radius]
}

// Weights returns a copy of the row-major weights.
func (k *Kernel) Weights() []float64 {
	out := make([]float64, len(k.weights))
	copy(out, k.weights)
	return out
}

// Sum returns the total weight.
func (k *Kernel) Sum() float64 { return floats.Sum(k.weights) }

// Params returns the ring parameters the kernel was built from.
func (k *Kernel) Params() (mu, sigma float64) { return k.mu, k.sigma }

// validate reports why the kernel cannot be used for a step.
func (k *Kernel) validate() error {
	if k == nil || len(k.weights) == 0 {
		return &StepError{Stage: "kernel", Index: -1, Msg: "empty kernel"}
	}
	side := 2*k.radius + 1
	if k.radius < 0 || len(k.weights) != side*side {
		return &StepError{Stage: "kernel", Index: -1, Msg: fmt.Sprintf("malformed kernel: %d weights for radius %d", len(k.weights), k.radius)}
	}
	for i, w := range k.weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return &StepError{Stage: "kernel", Index: i, Value: w}
		}
	}
	return nil
}

// RingKernel builds the Lenia ring kernel. For every offset (dx, dy) in
// [-radius, radius]^2 the normalized distance is
//
//	d = sqrt((1+dx)^2 + (1+dy)^2) / radius
//
// and the weight is Gaussian(d, mu, sigma), zeroed beyond d > 1. The result is
// normalized to sum to 1.
func RingKernel(mu, sigma float64, radius int) (*Kernel, error) {
	if radius < 1 {
		return nil, invalidParam("radius", float64(radius), "must be at least 1")
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, invalidParam("sigma", sigma, "must be positive")
	}
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, invalidParam("mu", mu, "must be finite")
	}
	side := 2*radius + 1
	weights := make([]float64, side*side)
	r := float64(radius)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			fx := float64(1 + dx)
			fy := float64(1 + dy)
			weights[(dy+radius)*side+dx+radius] = math.Sqrt(fx*fx+fy*fy) / r
		}
	}
	outside := make([]bool, len(weights))
	for i, d := range weights {
		outside[i] = d > 1
	}
	GaussianSlice(weights, weights, mu, sigma)
	for i := range weights {
		if outside[i] {
			weights[i] = 0
		}
	}
	total := floats.Sum(weights)
	if total == 0 {
		return nil, fmt.Errorf("%w: mu=%v sigma=%v radius=%d leaves no weight inside d<=1", ErrDegenerateKernel, mu, sigma, radius)
	}
	floats.Scale(1/total, weights)
	return &Kernel{radius: radius, weights: weights, mu: mu, sigma: sigma, name: "ring"}, nil
}

var mooreWeights = []float64{
	1, 1, 1,
	1, 0, 1,
	1, 1, 1,
}

// MooreKernel returns the 3x3 neighbor-counting mask. It is not normalized.
func MooreKernel() *Kernel {
	return &Kernel{radius: 1, weights: append([]float64(nil), mooreWeights...), name: "moore"}
}

// NewKernel builds a kernel from explicit row-major weights. side must be odd
// and the weights non-negative and finite.
func NewKernel(side int, weights []float64) (*Kernel, error) {
	if side < 1 || side%2 == 0 {
		return nil, invalidParam("side", float64(side), "must be odd and positive")
	}
	if len(weights) != side*side {
		return nil, fmt.Errorf("%w: expected %d weights, got %d", ErrInvalidParameter, side*side, len(weights))
	}
	k := &Kernel{radius: side / 2, weights: append([]float64(nil), weights...), name: "custom"}
	for i, w := range k.weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%w: weight %d = %v", ErrInvalidParameter, i, w)
		}
	}
	return k, nil
}

// RadialProfile returns the kernel weights along the positive x axis through
// the kernel's biased center, indexed by offset 0..R. It is the cross-section
// plotted next to the growth function.
func (k *Kernel) RadialProfile() []float64 {
	if k.Size() == 0 {
		return nil
	}
	out := make([]float64, k.radius+1)
	for i := range out {
		out[i] = k.At(i-1, -1)
	}
	return out
}
