//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"lenia-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type previewProvider interface {
	GrowthCurve() (xs, ys []float64)
	KernelProfile() []float64
}

// Overlay draws the growth function and kernel profile previews over the
// bottom-left corner of the simulation view. K toggles it.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(previewProvider)
	if !ok {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	size := o.sim.Size()
	viewH := float64(size.H * scale)
	boxW := math.Min(float64(size.W*scale)/2-2*boxMargin, maxBoxWidth)
	if boxW < 40 {
		return
	}
	boxH := boxW * 0.6
	top := viewH - boxH - boxMargin

	xs, ys := provider.GrowthCurve()
	o.drawPlot(screen, "growth", boxMargin, top, boxW, boxH, xs, ys, -1, 1)

	profile := provider.KernelProfile()
	pxs := make([]float64, len(profile))
	peak := 0.0
	for i, v := range profile {
		pxs[i] = float64(i)
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}
	o.drawPlot(screen, "kernel", 2*boxMargin+boxW, top, boxW, boxH, pxs, profile, 0, peak)
}

func (o *Overlay) drawPlot(screen *ebiten.Image, label string, x, y, w, h float64, xs, ys []float64, lo, hi float64) {
	o.drawRect(screen, x, y, w, h, color.RGBA{R: 10, G: 12, B: 18, A: 190})
	text.Draw(screen, label, basicfont.Face7x13, int(x)+4, int(y)+13, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(xs) < 2 || len(xs) != len(ys) || hi <= lo {
		return
	}
	x0, x1 := xs[0], xs[len(xs)-1]
	if x1 <= x0 {
		return
	}
	px := func(v float64) float64 { return x + plotPad + (v-x0)/(x1-x0)*(w-2*plotPad) }
	py := func(v float64) float64 { return y + h - plotPad - (clamp(v, lo, hi)-lo)/(hi-lo)*(h-2*plotPad) }

	if lo < 0 && hi > 0 {
		zero := py(0)
		o.drawLine(screen, x+plotPad, zero, x+w-plotPad, zero, 1, color.RGBA{R: 80, G: 80, B: 90, A: 200})
	}
	curve := color.RGBA{R: 120, G: 200, B: 240, A: 255}
	for i := 1; i < len(xs); i++ {
		o.drawLine(screen, px(xs[i-1]), py(ys[i-1]), px(xs[i]), py(ys[i]), 1.5, curve)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

const (
	boxMargin   = 8.0
	maxBoxWidth = 220.0
	plotPad     = 6.0
)
