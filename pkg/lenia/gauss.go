package lenia

import "math"

// Gaussian returns exp(-0.5*((x-mu)/sigma)^2). It peaks at exactly 1 when
// x == mu. sigma must be positive; callers validate it where parameters are set.
func Gaussian(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

// GaussianSlice evaluates Gaussian element-wise from src into dst. dst and src
// may alias.
func GaussianSlice(dst, src []float64, mu, sigma float64) {
	for i, x := range src {
		dst[i] = Gaussian(x, mu, sigma)
	}
}
