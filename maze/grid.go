package maze

import (
	"fmt"
	"io"
	"strings"
)

// Cell is the state of one grid square.
type Cell bool

const (
	Wall Cell = false
	Open Cell = true
)

type Point struct {
	X, Y int
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a cols x rows maze stored row-major. It is not modified after
// generation.
type Grid struct {
	Cols, Rows int
	Cells      []Cell
}

func newGrid(cols, rows int) *Grid {
	return &Grid{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]Cell, cols*rows),
	}
}

func (g *Grid) In(p Point) bool {
	return p.X >= 0 && p.X < g.Cols && p.Y >= 0 && p.Y < g.Rows
}

func (g *Grid) At(p Point) Cell {
	if !g.In(p) {
		return Wall
	}
	return g.Cells[p.Y*g.Cols+p.X]
}

// Open reports whether p is inside the grid and walkable.
func (g *Grid) Open(p Point) bool {
	return g.At(p) == Open
}

func (g *Grid) set(p Point, c Cell) {
	g.Cells[p.Y*g.Cols+p.X] = c
}

func (g *Grid) Entrance() Point {
	return Point{X: 1, Y: 1}
}

func (g *Grid) Exit() Point {
	return Point{X: g.Cols - 2, Y: g.Rows - 2}
}

func (g *Grid) OpenCount() int {
	n := 0
	for _, c := range g.Cells {
		if c == Open {
			n++
		}
	}
	return n
}

// OpenEdges counts pairs of horizontally or vertically adjacent open cells.
func (g *Grid) OpenEdges() int {
	n := 0
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			p := Point{x, y}
			if !g.Open(p) {
				continue
			}
			if g.Open(p.Add(1, 0)) {
				n++
			}
			if g.Open(p.Add(0, 1)) {
				n++
			}
		}
	}
	return n
}

// String renders the grid with '#' for walls and '.' for open cells, one row
// per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Cols + 1) * g.Rows)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.Open(Point{x, y}) {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse reads the String format back. Blank lines are skipped and every row
// must have the same width. The result is not validated as a perfect maze.
func Parse(text string) (*Grid, error) {
	lines := make([]string, 0)
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("maze: parse: empty input")
	}
	g := newGrid(len(lines[0]), len(lines))
	for y, l := range lines {
		if len(l) != g.Cols {
			return nil, fmt.Errorf("maze: parse: row %d has width %d, want %d", y, len(l), g.Cols)
		}
		for x, char := range l {
			switch char {
			case '#':
			case '.':
				g.set(Point{x, y}, Open)
			default:
				return nil, fmt.Errorf("maze: parse: unexpected %q at %d,%d", char, x, y)
			}
		}
	}
	return g, nil
}

// Read parses a hand drawn grid and rejects it unless Check passes.
func Read(r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	g, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	if err := g.Check(); err != nil {
		return nil, err
	}
	return g, nil
}
