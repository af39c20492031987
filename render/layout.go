package render

import (
	"errors"
	"fmt"
)

var ErrInvalidMount = errors.New("render: invalid mount")

// Layout is the pixel geometry of a mounted maze.
type Layout struct {
	Cols, Rows    int
	Width, Height int
	CellSize      float64
}

// NewLayout sizes the surface to the container width, clamped to maxWidth
// when maxWidth is positive, and derives the cell size from it.
func NewLayout(containerWidth, maxWidth, cols, rows int) (Layout, error) {
	if containerWidth <= 0 {
		return Layout{}, fmt.Errorf("%w: container width %d", ErrInvalidMount, containerWidth)
	}
	if cols <= 0 || rows <= 0 {
		return Layout{}, fmt.Errorf("%w: grid %dx%d", ErrInvalidMount, cols, rows)
	}
	width := containerWidth
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	cell := float64(width) / float64(cols)
	return Layout{
		Cols:     cols,
		Rows:     rows,
		Width:    width,
		Height:   int(cell*float64(rows) + 0.5),
		CellSize: cell,
	}, nil
}
