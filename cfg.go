package main

import (
	"fmt"
	"math/rand"

	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/config"
	"github.com/zucenko/fogmaze/maze"
	"github.com/zucenko/fogmaze/model"
)

// LoadMaze reads a hand drawn maze, '#' for walls and '.' for floor. The grid
// must have playable dimensions and a path from entrance to exit.
func LoadMaze(path string) (*maze.Grid, error) {
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open maze %s: %w", path, err)
	}
	defer file.Close()
	return maze.Read(file)
}

// fixedMaze serves the same hand drawn grid for every run.
func fixedMaze(grid *maze.Grid) model.Generator {
	return func(cols, rows int, rng *rand.Rand) (*maze.Grid, error) {
		return grid, nil
	}
}

// gameSettings maps the loaded settings onto the model, swapping in a hand
// drawn maze when mazePath is set.
func gameSettings(s config.Settings, mazePath string) (model.Settings, error) {
	gs := s.Game()
	if mazePath == "" {
		return gs, nil
	}
	grid, err := LoadMaze(mazePath)
	if err != nil {
		return gs, err
	}
	log.Infof("playing hand drawn maze %s (%dx%d)", mazePath, grid.Cols, grid.Rows)
	gs.Cols, gs.Rows = grid.Cols, grid.Rows
	gs.Generator = fixedMaze(grid)
	return gs, nil
}

// pollSettings applies a reloaded settings file without blocking the frame.
func (g *Game) pollSettings() {
	if g.watcher == nil {
		return
	}
	select {
	case s, ok := <-g.watcher.Updates:
		if !ok {
			g.watcher = nil
			return
		}
		g.reconfigure(s)
	case err := <-g.watcher.Errors:
		if err != nil {
			log.Warnf("settings reload rejected: %v", err)
		}
	default:
	}
}

func (g *Game) reconfigure(s config.Settings) {
	log.Infof("settings reloaded: %dx%d radius %.1f", s.Cols, s.Rows, s.VisibilityRadius)
	if !g.handDrawn {
		// takes effect on the next run
		g.Model.Resize(s.Cols, s.Rows)
	}
	g.Renderer.Radius = s.VisibilityRadius
	s.ApplyLogLevel()
	g.settings = s
	if err := g.relayout(g.Renderer.Layout.Cols, g.Renderer.Layout.Rows); err != nil {
		log.Warnf("relayout: %v", err)
	}
}
