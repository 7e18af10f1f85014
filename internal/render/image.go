package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Image renders a w x h cell field into an RGBA image, upscaled by scale with
// nearest-neighbor sampling so cells stay crisp.
func Image(cells []float64, w, h int, p Palette, scale int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells do not form a %dx%d grid", len(cells), w, h)
	}
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	FillRGBA(src.Pix, cells, p)
	if scale <= 1 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG encodes the cell field as PNG.
func WritePNG(out io.Writer, cells []float64, w, h int, p Palette, scale int) error {
	img, err := Image(cells, w, h, p, scale)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}

// SavePNG writes the cell field to path.
func SavePNG(path string, cells []float64, w, h int, p Palette, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, cells, w, h, p, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// asciiRamp orders glyphs from empty to full.
const asciiRamp = " .:-=+*#%@"

// Glyph returns the ASCII character for a cell value.
func Glyph(v float64) byte {
	v = clamp01(v)
	i := int(v * float64(len(asciiRamp)-1))
	return asciiRamp[i]
}

// WriteASCII prints one line per grid row, one glyph per cell.
func WriteASCII(out io.Writer, cells []float64, w, h int) error {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return fmt.Errorf("render: %d cells do not form a %dx%d grid", len(cells), w, h)
	}
	bw := bufio.NewWriter(out)
	line := make([]byte, w+1)
	line[w] = '\n'
	for y := 0; y < h; y++ {
		for x, v := range cells[y*w : (y+1)*w] {
			line[x] = Glyph(v)
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
