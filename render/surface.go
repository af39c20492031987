// Package render draws maze snapshots onto any raster Surface: the ebiten
// screen, a terminal grid or a plain image.
package render

import "image/color"

// Surface is a drawing target measured in pixels.
type Surface interface {
	Size() (width, height int)
	Clear(c color.Color)
	// FillRect blends c over the rectangle using its alpha.
	FillRect(x, y, width, height float64, c color.NRGBA)
}
