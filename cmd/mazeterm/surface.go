package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// halfBlock shows two stacked pixels in one terminal cell: the foreground is
// the upper pixel, the background the lower one.
const halfBlock = '▀'

// cellSurface is a small pixel buffer flushed to the terminal two pixel rows
// per text line. Rectangles are blended by how much of each pixel they cover.
type cellSurface struct {
	width, height int
	pixels        []colorful.Color
}

func newCellSurface(width, height int) *cellSurface {
	if height%2 == 1 {
		height++
	}
	return &cellSurface{
		width:  width,
		height: height,
		pixels: make([]colorful.Color, width*height),
	}
}

func (s *cellSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *cellSurface) Clear(c color.Color) {
	cc, _ := colorful.MakeColor(c)
	for i := range s.pixels {
		s.pixels[i] = cc
	}
}

func (s *cellSurface) FillRect(x, y, width, height float64, c color.NRGBA) {
	if c.A == 0 || width <= 0 || height <= 0 {
		return
	}
	src := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	alpha := float64(c.A) / 255
	x0, x1 := clampInt(int(math.Floor(x)), s.width), clampInt(int(math.Ceil(x+width)), s.width)
	y0, y1 := clampInt(int(math.Floor(y)), s.height), clampInt(int(math.Ceil(y+height)), s.height)
	for py := y0; py < y1; py++ {
		cy := overlap(float64(py), y, y+height)
		for px := x0; px < x1; px++ {
			cover := cy * overlap(float64(px), x, x+width)
			if cover <= 0 {
				continue
			}
			i := py*s.width + px
			s.pixels[i] = s.pixels[i].BlendRgb(src, alpha*cover)
		}
	}
}

func (s *cellSurface) At(x, y int) colorful.Color {
	return s.pixels[y*s.width+x]
}

// Flush writes the buffer to screen with its top-left corner at ox, oy.
func (s *cellSurface) Flush(screen tcell.Screen, ox, oy int) {
	for y := 0; y < s.height; y += 2 {
		for x := 0; x < s.width; x++ {
			style := tcell.StyleDefault.
				Foreground(termColor(s.At(x, y))).
				Background(termColor(s.At(x, y+1)))
			screen.SetContent(ox+x, oy+y/2, halfBlock, nil, style)
		}
	}
}

func termColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// overlap is how much of the unit span [p, p+1) lies inside [from, to).
func overlap(p, from, to float64) float64 {
	v := math.Min(p+1, to) - math.Max(p, from)
	if v < 0 {
		return 0
	}
	return v
}

func clampInt(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
