package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// Raster is a Surface backed by an in-memory RGBA image.
type Raster struct {
	Image *image.RGBA
}

func NewRaster(width, height int) *Raster {
	return &Raster{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (r *Raster) Size() (int, int) {
	b := r.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Clear(c color.Color) {
	draw.Draw(r.Image, r.Image.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) FillRect(x, y, width, height float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	rect := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+width)), int(math.Round(y+height)),
	).Intersect(r.Image.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.Image, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image)
}
