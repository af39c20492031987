package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten"
	"github.com/zucenko/fogmaze/render"
)

// Nine draws a nine-slice panel: corners keep their size, edges stretch
// along one axis and the center along both.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	targets             [4][2]float64
	stretch             [2]float64
}

// newPanel builds a rounded panel from a procedurally drawn tile so the
// client ships without image assets.
func newPanel(r, g, b, alpha float64) (*Nine, error) {
	const tile, corner = 24, 8
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	raster := render.NewRaster(tile, tile)
	for y := 0; y < tile; y++ {
		// rows inside the corner band are inset along a quarter circle
		inset := 0.0
		if d := math.Min(float64(y), float64(tile-1-y)); d < corner {
			dy := corner - d - 0.5
			inset = corner - math.Sqrt(corner*corner-dy*dy)
		}
		raster.FillRect(inset, float64(y), tile-2*inset, 1, white)
	}
	img, err := ebiten.NewImageFromImage(raster.Image, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images: img,
		alpha:  alpha,
		R:      r, G: g, B: b, Scale: 1,
		positions: [4][2]int{{0, 0}, {corner, corner}, {tile - corner, tile - corner}, {tile, tile}},
	}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	for axis, origin := range [2]int{n.x, n.y} {
		size := [2]int{n.width, n.height}[axis]
		n.targets[0][axis] = float64(origin)
		n.targets[1][axis] = float64(origin) + n.Scale*float64(n.positions[1][axis])
		n.targets[2][axis] = float64(origin+size) - n.Scale*float64(n.positions[3][axis]-n.positions[2][axis])
		n.targets[3][axis] = float64(origin + size)
		inner := n.targets[2][axis] - n.targets[1][axis]
		n.stretch[axis] = inner / float64(n.positions[2][axis]-n.positions[1][axis])
	}
}

func (n *Nine) Draw(screen *ebiten.Image) {
	scale := func(axis, i int) float64 {
		if i == 1 {
			return n.stretch[axis]
		}
		return n.Scale
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(n.positions[col][0], n.positions[row][1], n.positions[col+1][0], n.positions[row+1][1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale(0, col), scale(1, row))
			op.GeoM.Translate(n.targets[col][0], n.targets[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
