package lenia

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"lenia-ca/pkg/core"
)

// Convolver computes the toroidal "same"-size convolution of a grid with a
// kernel into dst, which has one entry per grid cell.
type Convolver interface {
	Convolve(dst []float64, g *core.Grid, k *Kernel)
}

// DirectConvolver evaluates the convolution sum cell by cell. It is the
// reference implementation and the fastest choice for small kernels.
type DirectConvolver struct{}

// Convolve implements Convolver.
//
//	dst[y][x] = sum over (dx, dy) of K[dy][dx] * g[y-dy][x-dx]
//
// with indices wrapped around the grid edges.
func (DirectConvolver) Convolve(dst []float64, g *core.Grid, k *Kernel) {
	w, h := g.W, g.H
	cells := g.Cells()
	r := k.radius
	side := 2*r + 1
	for i := range dst {
		dst[i] = 0
	}
	for ky := 0; ky < side; ky++ {
		dy := ky - r
		for kx := 0; kx < side; kx++ {
			weight := k.weights[ky*side+kx]
			if weight == 0 {
				continue
			}
			dx := kx - r
			for y := 0; y < h; y++ {
				sy := ((y-dy)%h + h) % h
				row := cells[sy*w : sy*w+w]
				out := dst[y*w : y*w+w]
				for x := 0; x < w; x++ {
					sx := ((x-dx)%w + w) % w
					out[x] += weight * row[sx]
				}
			}
		}
	}
}

// FFTConvolver performs circular convolution in the frequency domain using
// gonum's complex FFT along rows and then columns. Kernel spectra are cached
// per kernel and grid size; kernels are immutable so the cache never goes stale.
type FFTConvolver struct {
	mu    sync.Mutex
	plans map[planKey]*fftPlan
}

type planKey struct {
	w, h   int
	kernel *Kernel
}

type fftPlan struct {
	w, h     int
	row, col *fourier.CmplxFFT
	scale    float64
	spectrum []complex128
	buf      []complex128
	rowTmp   []complex128
	colIn    []complex128
	colOut   []complex128
}

// NewFFTConvolver returns an FFT-based convolver with an empty plan cache.
func NewFFTConvolver() *FFTConvolver {
	return &FFTConvolver{plans: map[planKey]*fftPlan{}}
}

// Convolve implements Convolver.
func (c *FFTConvolver) Convolve(dst []float64, g *core.Grid, k *Kernel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.plan(g.W, g.H, k)
	for i, v := range g.Cells() {
		p.buf[i] = complex(v, 0)
	}
	p.transform(p.buf, false)
	for i := range p.buf {
		p.buf[i] *= p.spectrum[i]
	}
	p.transform(p.buf, true)
	for i := range dst {
		dst[i] = real(p.buf[i]) * p.scale
	}
}

func (c *FFTConvolver) plan(w, h int, k *Kernel) *fftPlan {
	key := planKey{w: w, h: h, kernel: k}
	if p, ok := c.plans[key]; ok {
		return p
	}
	// Keep the cache bounded when parameters change often.
	if len(c.plans) >= 8 {
		c.plans = map[planKey]*fftPlan{}
	}
	p := &fftPlan{
		w:      w,
		h:      h,
		row:    fourier.NewCmplxFFT(w),
		col:    fourier.NewCmplxFFT(h),
		buf:    make([]complex128, w*h),
		rowTmp: make([]complex128, w),
		colIn:  make([]complex128, h),
		colOut: make([]complex128, h),
	}
	p.scale = 1 / (roundTrip(p.row) * roundTrip(p.col))

	// Place the kernel so that offset (dx, dy) lands at (dx mod w, dy mod h).
	spectrum := make([]complex128, w*h)
	r := k.radius
	side := 2*r + 1
	for ky := 0; ky < side; ky++ {
		for kx := 0; kx < side; kx++ {
			weight := k.weights[ky*side+kx]
			if weight == 0 {
				continue
			}
			x := ((kx-r)%w + w) % w
			y := ((ky-r)%h + h) % h
			spectrum[y*w+x] += complex(weight, 0)
		}
	}
	p.transform(spectrum, false)
	p.spectrum = spectrum
	c.plans[key] = p
	return p
}

// roundTrip measures the gain of a forward+inverse transform pair so the
// result can be normalized regardless of the library's scaling convention.
func roundTrip(t *fourier.CmplxFFT) float64 {
	n := t.Len()
	seq := make([]complex128, n)
	seq[0] = 1
	coeff := t.Coefficients(nil, seq)
	back := t.Sequence(nil, coeff)
	return real(back[0])
}

func (p *fftPlan) transform(data []complex128, inverse bool) {
	for y := 0; y < p.h; y++ {
		row := data[y*p.w : y*p.w+p.w]
		if inverse {
			p.row.Sequence(p.rowTmp, row)
		} else {
			p.row.Coefficients(p.rowTmp, row)
		}
		copy(row, p.rowTmp)
	}
	for x := 0; x < p.w; x++ {
		for y := 0; y < p.h; y++ {
			p.colIn[y] = data[y*p.w+x]
		}
		if inverse {
			p.col.Sequence(p.colOut, p.colIn)
		} else {
			p.col.Coefficients(p.colOut, p.colIn)
		}
		for y := 0; y < p.h; y++ {
			data[y*p.w+x] = p.colOut[y]
		}
	}
}

// AutoConvolver uses direct convolution for small kernels and FFT above
// FFTThreshold cells of kernel side.
type AutoConvolver struct {
	FFTThreshold int
	direct       DirectConvolver
	fft          *FFTConvolver
}

// NewAutoConvolver returns a convolver switching to FFT for kernels wider than 7.
func NewAutoConvolver() *AutoConvolver {
	return &AutoConvolver{FFTThreshold: 7, fft: NewFFTConvolver()}
}

// Convolve implements Convolver.
func (a *AutoConvolver) Convolve(dst []float64, g *core.Grid, k *Kernel) {
	if k.Size() > a.FFTThreshold {
		a.fft.Convolve(dst, g, k)
		return
	}
	a.direct.Convolve(dst, g, k)
}

// ParseConvolver maps a name ("direct", "fft", "auto") to a Convolver.
func ParseConvolver(name string) (Convolver, error) {
	switch name {
	case "", "auto":
		return NewAutoConvolver(), nil
	case "direct":
		return DirectConvolver{}, nil
	case "fft":
		return NewFFTConvolver(), nil
	default:
		return nil, fmt.Errorf("%w: convolver %q (valid: auto, direct, fft)", ErrInvalidParameter, name)
	}
}
