package render

import (
	"image/color"
	"math"
)

// Palette maps a cell value in [0, 1] to a color.
type Palette interface {
	At(v float64) color.RGBA
}

// Gray blends linearly from Off at 0 to On at 1.
type Gray struct {
	On, Off color.Color
}

// At implements Palette.
func (g Gray) At(v float64) color.RGBA {
	return lerp(rgba(g.Off), rgba(g.On), clamp01(v))
}

// Ramp interpolates between evenly spaced color stops.
type Ramp []color.RGBA

// At implements Palette.
func (r Ramp) At(v float64) color.RGBA {
	switch len(r) {
	case 0:
		return color.RGBA{}
	case 1:
		return r[0]
	}
	v = clamp01(v)
	pos := v * float64(len(r)-1)
	i := int(math.Floor(pos))
	if i >= len(r)-1 {
		return r[len(r)-1]
	}
	return lerp(r[i], r[i+1], pos-float64(i))
}

// Default palettes.
var (
	Mono  = Gray{On: color.White, Off: color.Black}
	Heat  = Ramp{{0, 0, 0, 255}, {90, 20, 120, 255}, {220, 60, 50, 255}, {250, 200, 60, 255}, {255, 255, 230, 255}}
	Ocean = Ramp{{4, 8, 24, 255}, {20, 60, 120, 255}, {40, 160, 180, 255}, {220, 250, 240, 255}}
)

// PaletteByName returns a palette for "mono", "heat" or "ocean".
func PaletteByName(name string) (Palette, bool) {
	switch name {
	case "", "mono", "gray":
		return Mono, true
	case "heat":
		return Heat, true
	case "ocean":
		return Ocean, true
	}
	return nil, false
}

// FillRGBA converts cell values into RGBA pixels in buf, which must hold
// 4*len(cells) bytes.
func FillRGBA(buf []byte, cells []float64, p Palette) {
	if p == nil {
		p = Mono
	}
	for i, v := range cells {
		base := i * 4
		col := p.At(v)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func rgba(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 255}
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
