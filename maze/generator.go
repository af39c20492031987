package maze

import (
	"errors"
	"fmt"
	"math/rand"
)

// MinSize is the smallest dimension that still leaves an interior.
const MinSize = 5

var (
	ErrInvalidDimensions = errors.New("maze: invalid dimensions")
	ErrTooSmall          = fmt.Errorf("%w: below %d", ErrInvalidDimensions, MinSize)
	ErrEvenDimension     = fmt.Errorf("%w: not odd", ErrInvalidDimensions)
	ErrUnplayable        = errors.New("maze: unplayable")
)

// steps are the four lattice neighbours at distance 2.
var steps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

// Validate checks that cols x rows can hold a maze. Dimensions are never
// rounded.
func Validate(cols, rows int) error {
	if cols < MinSize || rows < MinSize {
		return fmt.Errorf("%w: %dx%d", ErrTooSmall, cols, rows)
	}
	if cols%2 == 0 || rows%2 == 0 {
		return fmt.Errorf("%w: %dx%d", ErrEvenDimension, cols, rows)
	}
	return nil
}

// Check validates a grid that did not come from Generate, such as a parsed
// one: the dimensions must pass Validate and the exit must be reachable from
// the entrance.
func (g *Grid) Check() error {
	if err := Validate(g.Cols, g.Rows); err != nil {
		return err
	}
	for _, p := range []Point{g.Entrance(), g.Exit()} {
		if !g.Open(p) {
			return fmt.Errorf("%w: wall at %v", ErrUnplayable, p)
		}
	}
	if g.Solve(g.Entrance(), g.Exit()) == nil {
		return fmt.Errorf("%w: exit %v unreachable", ErrUnplayable, g.Exit())
	}
	return nil
}

// Generate carves a perfect maze with a randomized depth-first backtracker
// starting at (1,1). The same rng state always yields the same grid.
func Generate(cols, rows int, rng *rand.Rand) (*Grid, error) {
	if err := Validate(cols, rows); err != nil {
		return nil, err
	}
	g := newGrid(cols, rows)
	start := g.Entrance()
	g.set(start, Open)

	stack := []Point{start}
	order := steps
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		carved := false
		for _, d := range order {
			next := curr.Add(d.X, d.Y)
			// interior only, the outer ring stays wall
			if next.X <= 0 || next.X >= cols-1 || next.Y <= 0 || next.Y >= rows-1 {
				continue
			}
			if g.At(next) == Open {
				continue
			}
			g.set(curr.Add(d.X/2, d.Y/2), Open)
			g.set(next, Open)
			stack = append(stack, next)
			carved = true
			break
		}
		if !carved {
			stack = stack[:len(stack)-1]
		}
	}

	g.set(g.Exit(), Open)
	return g, nil
}
