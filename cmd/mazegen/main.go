package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/maze"
	"github.com/zucenko/fogmaze/model"
	"github.com/zucenko/fogmaze/render"
)

type options struct {
	cols, rows int
	seed       int64
	solve      bool
	png        string
	width      int
}

func main() {
	var o options
	flag.IntVar(&o.cols, "cols", model.DefaultSize, "maze width in cells, odd and at least 5")
	flag.IntVar(&o.rows, "rows", model.DefaultSize, "maze height in cells, odd and at least 5")
	flag.Int64Var(&o.seed, "seed", 0, "random seed, 0 for a fresh one")
	flag.BoolVar(&o.solve, "solve", false, "mark the shortest path")
	flag.StringVar(&o.png, "png", "", "also write a fully revealed PNG to this file")
	flag.IntVar(&o.width, "width", 600, "PNG width in pixels")
	flag.Parse()

	if err := run(o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(o options, out io.Writer) error {
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grid, err := maze.Generate(o.cols, o.rows, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	path := grid.Solve(grid.Entrance(), grid.Exit())
	log.Debugf("seed %d, %d open cells, path of %d", seed, grid.OpenCount(), len(path))

	text := grid.String()
	if o.solve {
		text = markPath(grid, path)
	}
	if _, err := io.WriteString(out, text); err != nil {
		return err
	}
	if o.png != "" {
		return writePNG(o.png, o.width, grid, path)
	}
	return nil
}

// markPath draws the grid with the solution as '*'.
func markPath(g *maze.Grid, path []maze.Point) string {
	on := make(map[maze.Point]bool, len(path))
	for _, p := range path {
		on[p] = true
	}
	var b strings.Builder
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			p := maze.Point{X: x, Y: y}
			switch {
			case on[p]:
				b.WriteByte('*')
			case g.Open(p):
				b.WriteByte('.')
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// writePNG renders the maze as a won game, which reveals every cell, with
// the solution as the trail.
func writePNG(name string, width int, g *maze.Grid, path []maze.Point) error {
	layout, err := render.NewLayout(width, 0, g.Cols, g.Rows)
	if err != nil {
		return err
	}
	raster := render.NewRaster(layout.Width, layout.Height)
	snap := model.Snapshot{
		Status: model.WON,
		Grid:   g,
		Exit:   g.Exit(),
		Player: g.Entrance(),
		Visual: model.Vec{X: float64(g.Entrance().X), Y: float64(g.Entrance().Y)},
		Trail:  path,
	}
	render.NewRenderer(layout, render.DefaultRadius).Draw(raster, &snap, 0)

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := raster.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}
