package plot

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"lenia-ca/pkg/lenia"
)

func decodeSize(t *testing.T, buf *bytes.Buffer) (int, int) {
	t.Helper()
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestGrowthChart(t *testing.T) {
	for _, mode := range []lenia.Mode{lenia.Continuous, lenia.Discrete} {
		var buf bytes.Buffer
		if err := Growth(&buf, lenia.DefaultParams(mode)); err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if w, h := decodeSize(t, &buf); w != 640 || h != 360 {
			t.Fatalf("%s: size %dx%d", mode, w, h)
		}
	}
}

func TestKernelChart(t *testing.T) {
	for _, mode := range []lenia.Mode{lenia.Continuous, lenia.Discrete} {
		var buf bytes.Buffer
		if err := Kernel(&buf, lenia.DefaultParams(mode)); err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		decodeSize(t, &buf)
	}
}

func TestKernelChartDegenerate(t *testing.T) {
	p := lenia.DefaultParams(lenia.Continuous)
	p.Mu, p.Sigma = 5, 0.01
	err := Kernel(&bytes.Buffer{}, p)
	if !errors.Is(err, lenia.ErrDegenerateKernel) {
		t.Fatalf("expected ErrDegenerateKernel, got %v", err)
	}
}

func TestLinesRejectsShortSeries(t *testing.T) {
	if err := Lines(&bytes.Buffer{}, Options{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("no series: got %v", err)
	}
	s := Series{Name: "x", X: []float64{0, 1}, Y: []float64{0}}
	if err := Lines(&bytes.Buffer{}, Options{}, s); !errors.Is(err, ErrNoData) {
		t.Fatalf("mismatched series: got %v", err)
	}
}

func TestLinesCustomSize(t *testing.T) {
	var buf bytes.Buffer
	s := Series{Name: "flat", X: []float64{0, 1, 2}, Y: []float64{1, 1, 1}}
	if err := Lines(&buf, Options{Width: 200, Height: 120}, s); err != nil {
		t.Fatalf("lines: %v", err)
	}
	if w, h := decodeSize(t, &buf); w != 200 || h != 120 {
		t.Fatalf("size %dx%d", w, h)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	s := GrowthSeries(lenia.DefaultParams(lenia.Discrete))
	if err := Table(&buf, s, "u", "growth"); err != nil {
		t.Fatalf("table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected header plus 9 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[4], "3.0000") || !strings.HasSuffix(lines[4], "1.000000") {
		t.Fatalf("row for 3 neighbors = %q", lines[4])
	}
}

func TestKernelSeriesPeak(t *testing.T) {
	k, err := lenia.RingKernel(lenia.DefaultMu, lenia.DefaultSigma, lenia.DefaultRadius)
	if err != nil {
		t.Fatal(err)
	}
	s := KernelSeries(k)
	if len(s.X) != lenia.DefaultRadius+1 {
		t.Fatalf("profile length %d", len(s.X))
	}
	best := 0
	for i, v := range s.Y {
		if v > s.Y[best] {
			best = i
		}
	}
	if best < 5 || best > 8 {
		t.Fatalf("peak at offset %d", best)
	}
}
