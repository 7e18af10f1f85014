package lenia

import (
	"math"
	"testing"
)

func TestGaussianPeakAndSymmetry(t *testing.T) {
	for _, sigma := range []float64{0.015, 0.2, 1, 7} {
		for _, mu := range []float64{-3, 0, 0.15, 0.5} {
			if got := Gaussian(mu, mu, sigma); got != 1 {
				t.Fatalf("Gaussian(mu, mu=%v, sigma=%v) = %v, expected 1", mu, sigma, got)
			}
			for _, d := range []float64{0.001, 0.1, 0.5, 2} {
				lo := Gaussian(mu-d, mu, sigma)
				hi := Gaussian(mu+d, mu, sigma)
				if math.Abs(lo-hi) > 1e-12 {
					t.Fatalf("Gaussian not symmetric at mu=%v d=%v: %v vs %v", mu, d, lo, hi)
				}
				if lo <= 0 && d < sigma {
					t.Fatalf("Gaussian must stay positive near the mean, got %v", lo)
				}
			}
		}
	}
	if got, want := Gaussian(0.7, 0.5, 0.2), math.Exp(-0.5); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Gaussian at mu+sigma = %v, expected %v", got, want)
	}
}

func TestGaussianSlice(t *testing.T) {
	src := []float64{-1, 0, 1}
	dst := make([]float64, 3)
	GaussianSlice(dst, src, 0, 1)
	want := []float64{math.Exp(-0.5), 1, math.Exp(-0.5)}
	for i := range want {
		if math.Abs(dst[i]-want[i]) > 1e-12 {
			t.Fatalf("dst[%d] = %v, expected %v", i, dst[i], want[i])
		}
	}
}

func TestLeniaGrowth(t *testing.T) {
	g := LeniaGrowth(DefaultGrowthMu, DefaultGrowthSigma)
	if got := g(DefaultGrowthMu); math.Abs(got-1) > 1e-9 {
		t.Fatalf("growth at mu = %v, expected 1", got)
	}
	if got := g(0); got >= 0 {
		t.Fatalf("growth at 0 should be negative, got %v", got)
	}
	for _, d := range []float64{0.001, 0.01, 0.05, 0.3} {
		lo, hi := g(DefaultGrowthMu-d), g(DefaultGrowthMu+d)
		if math.Abs(lo-hi) > 1e-10 {
			t.Fatalf("growth not symmetric at d=%v: %v vs %v", d, lo, hi)
		}
		if lo <= -1 || lo > 1 {
			t.Fatalf("growth %v outside (-1, 1]", lo)
		}
	}
	if got := g(DefaultGrowthMu + 5*DefaultGrowthSigma); got >= 0 {
		t.Fatalf("growth far from mu should be negative, got %v", got)
	}
}

func TestGameOfLifeGrowthIntegerPoints(t *testing.T) {
	want := map[int]float64{0: -1, 1: -1, 2: 0, 3: 1, 4: -1, 5: -1, 6: -1, 7: -1, 8: -1}
	for u, w := range want {
		if got := GameOfLifeGrowth(float64(u)); got != w {
			t.Fatalf("GameOfLifeGrowth(%d) = %v, expected %v", u, got, w)
		}
	}
	if GameOfLifeGrowth(3) <= 0 || GameOfLifeGrowth(2) < 0 || GameOfLifeGrowth(0) >= 0 || GameOfLifeGrowth(4) >= 0 {
		t.Fatal("birth/survival/death signs violated")
	}
}

func TestGameOfLifeGrowthContinuity(t *testing.T) {
	for _, eps := range []float64{0.05, 0.01, 1e-3, 1e-6} {
		for _, p := range []float64{2, 3} {
			exact := GameOfLifeGrowth(p)
			if d := math.Abs(GameOfLifeGrowth(p-eps) - exact); d >= 0.5 {
				t.Fatalf("jump of %v below u=%v (eps=%v)", d, p, eps)
			}
			if d := math.Abs(GameOfLifeGrowth(p+eps) - exact); d >= 0.5 {
				t.Fatalf("jump of %v above u=%v (eps=%v)", d, p, eps)
			}
		}
	}
	// Within a thousandth of an integer the value stays within the slope bound.
	for u := 0; u <= 8; u++ {
		exact := GameOfLifeGrowth(float64(u))
		for _, eps := range []float64{-1e-3, 1e-3} {
			if d := math.Abs(GameOfLifeGrowth(float64(u)+eps) - exact); d > 2.001e-3 {
				t.Fatalf("GameOfLifeGrowth deviates by %v within 1e-3 of %d", d, u)
			}
		}
	}
}

func TestGameOfLifeGrowthDenseSweep(t *testing.T) {
	for i := 0; i <= 800; i++ {
		u := float64(i) / 100
		g := GameOfLifeGrowth(u)
		if g < -1 || g > 1 {
			t.Fatalf("GameOfLifeGrowth(%v) = %v outside [-1, 1]", u, g)
		}
		if u > 2.95 && u < 3.05 && g <= -0.1 {
			t.Fatalf("GameOfLifeGrowth(%v) = %v, expected near-birth value", u, g)
		}
		if (u < 1.5 || u > 3.5) && g >= 0 {
			t.Fatalf("GameOfLifeGrowth(%v) = %v, expected death", u, g)
		}
	}
	if g := GameOfLifeGrowth(-2); g != -1 {
		t.Fatalf("below zero neighbors expected -1, got %v", g)
	}
	if g := GameOfLifeGrowth(12); g != -1 {
		t.Fatalf("above eight neighbors expected -1, got %v", g)
	}
}

func TestGrowthFuncApply(t *testing.T) {
	buf := []float64{0, 1, 2, 3, 4}
	GrowthFunc(GameOfLifeGrowth).Apply(buf, buf)
	want := []float64{-1, -1, 0, 1, -1}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("Apply in place: buf[%d] = %v, expected %v", i, buf[i], want[i])
		}
	}
}
