package lenia

import (
	"errors"
	"math"
	"testing"
)

func TestRingKernelNormalized(t *testing.T) {
	cases := []struct {
		mu, sigma float64
		radius    int
	}{
		{DefaultMu, DefaultSigma, DefaultRadius},
		{0.7, 0.1, DefaultRadius},
		{0.5, 0.3, 5},
		{0.2, 0.05, 20},
		{0.5, 0.15, 1},
	}
	for _, c := range cases {
		k, err := RingKernel(c.mu, c.sigma, c.radius)
		if err != nil {
			t.Fatalf("RingKernel(%v, %v, %d) failed: %v", c.mu, c.sigma, c.radius, err)
		}
		if got := k.Sum(); math.Abs(got-1) > 1e-9 {
			t.Fatalf("RingKernel(%v, %v, %d) sums to %.12f, expected 1", c.mu, c.sigma, c.radius, got)
		}
		if k.Size() != 2*c.radius+1 {
			t.Fatalf("expected side %d, got %d", 2*c.radius+1, k.Size())
		}
		for i, w := range k.Weights() {
			if w < 0 {
				t.Fatalf("weight %d negative: %v", i, w)
			}
		}
	}
}

func TestRingKernelCutsOffOutsideUnitDistance(t *testing.T) {
	k, err := RingKernel(DefaultMu, DefaultSigma, DefaultRadius)
	if err != nil {
		t.Fatal(err)
	}
	r := k.Radius()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := math.Hypot(float64(1+dx), float64(1+dy)) / float64(r)
			if d > 1 && k.At(dx, dy) != 0 {
				t.Fatalf("offset (%d,%d) at distance %.3f should be cut off, got %v", dx, dy, d, k.At(dx, dy))
			}
		}
	}
	// The ring is centered on (-1, -1), so that offset sits at d = 0.
	if k.At(-1, -1) >= k.At(-1+r/2, -1) {
		t.Fatal("ring kernel should weigh the ring above its center")
	}
}

func TestRingKernelDegenerate(t *testing.T) {
	_, err := RingKernel(5, 0.01, DefaultRadius)
	if !errors.Is(err, ErrDegenerateKernel) {
		t.Fatalf("expected ErrDegenerateKernel, got %v", err)
	}
}

func TestRingKernelRejectsInvalidParameters(t *testing.T) {
	cases := []struct {
		name      string
		mu, sigma float64
		radius    int
	}{
		{"zero sigma", 0.5, 0, 13},
		{"negative sigma", 0.5, -0.1, 13},
		{"nan mu", math.NaN(), 0.15, 13},
		{"zero radius", 0.5, 0.15, 0},
	}
	for _, c := range cases {
		if _, err := RingKernel(c.mu, c.sigma, c.radius); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", c.name, err)
		}
	}
}

func TestMooreKernel(t *testing.T) {
	k := MooreKernel()
	if k.Size() != 3 {
		t.Fatalf("expected 3x3 Moore kernel, got side %d", k.Size())
	}
	if k.At(0, 0) != 0 {
		t.Fatalf("center weight must be zero, got %v", k.At(0, 0))
	}
	if k.Sum() != 8 {
		t.Fatalf("Moore kernel counts 8 neighbors, sum=%v", k.Sum())
	}
	// Callers get copies; the shared mask must not change.
	w := k.Weights()
	w[0] = 42
	if MooreKernel().At(-1, -1) != 1 {
		t.Fatal("mutating Weights() leaked into the kernel")
	}
}

func TestNewKernelRejectsEvenSide(t *testing.T) {
	if _, err := NewKernel(2, []float64{1, 1, 1, 1}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for even side, got %v", err)
	}
	if _, err := NewKernel(3, []float64{1, 1}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for short weights, got %v", err)
	}
	if _, err := NewKernel(1, []float64{-1}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for negative weight, got %v", err)
	}
}

func TestRadialProfilePeaksNearMu(t *testing.T) {
	k, err := RingKernel(DefaultMu, DefaultSigma, DefaultRadius)
	if err != nil {
		t.Fatal(err)
	}
	profile := k.RadialProfile()
	if len(profile) != DefaultRadius+1 {
		t.Fatalf("expected %d samples, got %d", DefaultRadius+1, len(profile))
	}
	best := 0
	for i, v := range profile {
		if v > profile[best] {
			best = i
		}
	}
	want := DefaultMu * DefaultRadius
	if math.Abs(float64(best)-want) > 1 {
		t.Fatalf("profile peaks at %d, expected near %.1f", best, want)
	}
}
