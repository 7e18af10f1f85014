package lenia

import "math"

// GrowthFunc maps a convolved neighborhood value to a state delta in [-1, 1].
// Implementations are pure and safe to share.
type GrowthFunc func(u float64) float64

// Apply evaluates f element-wise from src into dst. dst and src may alias.
func (f GrowthFunc) Apply(dst, src []float64) {
	for i, u := range src {
		dst[i] = f(u)
	}
}

// LeniaGrowth returns the smooth bump -1 + 2*Gaussian(u, mu, sigma): +1 at
// u == mu, approaching -1 away from it.
func LeniaGrowth(mu, sigma float64) GrowthFunc {
	return func(u float64) float64 {
		return -1 + 2*Gaussian(u, mu, sigma)
	}
}

// golAnchors holds the Game of Life delta at integer neighbor counts 0..8:
// birth at 3, survival at 2, death elsewhere.
var golAnchors = [9]float64{-1, -1, 0, 1, -1, -1, -1, -1, -1}

// GameOfLifeGrowth is the Game of Life rule relaxed to a continuous function.
// It passes through golAnchors at every integer in 0..8, interpolates linearly
// between them and stays at -1 outside [0, 8].
//
// With dt = 1 and a 0/1 grid this reproduces the classical rule after
// clamping: 3 neighbors gives +1 (birth, or stay alive), 2 neighbors gives 0
// (keep the current state), anything else gives -1.
func GameOfLifeGrowth(u float64) float64 {
	if math.IsNaN(u) {
		return u
	}
	if u <= 0 || u >= 8 {
		return -1
	}
	i := int(math.Floor(u))
	frac := u - float64(i)
	if frac == 0 {
		return golAnchors[i]
	}
	return golAnchors[i] + frac*(golAnchors[i+1]-golAnchors[i])
}
