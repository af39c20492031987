package main

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/fogmaze/config"
	"github.com/zucenko/fogmaze/model"
	"github.com/zucenko/fogmaze/sound"
)

func newTestTerminal(t *testing.T) *terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	t.Cleanup(screen.Fini)

	s := config.Default()
	s.Cols, s.Rows = 9, 9
	s.Seed = 3
	s.Sound = false
	term := newTerminal(screen, s, sound.Open(false))
	t.Cleanup(term.frames.Disarm)
	return term
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTerminalLayout(t *testing.T) {
	term := newTestTerminal(t)
	layout := term.renderer.Layout
	assert.Equal(t, 36, layout.Width, "cells are capped at four columns")
	assert.Equal(t, 4.0, layout.CellSize)
	w, h := term.surface.Size()
	assert.Equal(t, 36, w)
	assert.Equal(t, 36, h)
}

func TestTerminalPlaysThrough(t *testing.T) {
	term := newTestTerminal(t)
	assert.True(t, term.handle(key(tcell.KeyEnter)))
	require.Equal(t, model.PLAYING, term.game.Status)
	assert.True(t, term.frames.Running())

	grid := term.game.Grid
	path := grid.Solve(grid.Entrance(), grid.Exit())
	require.NotEmpty(t, path)
	runes := map[model.Direction]rune{model.RIGHT: 'd', model.DOWN: 's', model.LEFT: 'a', model.UP: 'w'}
	for i := 1; i < len(path); i++ {
		dx, dy := path[i].X-path[i-1].X, path[i].Y-path[i-1].Y
		for d, r := range runes {
			if x, y := d.Delta(); x == dx && y == dy {
				term.handle(char(r))
			}
		}
	}
	assert.Equal(t, model.WON, term.game.Status)
	assert.Equal(t, len(path)-1, term.game.Stats.Moves)

	term.handle(char(' '))
	assert.Equal(t, model.PLAYING, term.game.Status)
	assert.Equal(t, 0, term.game.Stats.Moves)
}

func TestTerminalArrowKeys(t *testing.T) {
	term := newTestTerminal(t)
	term.handle(key(tcell.KeyEnter))
	start := term.game.Player
	moved := 0
	for _, k := range []tcell.Key{tcell.KeyRight, tcell.KeyDown} {
		term.handle(key(k))
		if term.game.Player != start {
			moved++
			break
		}
	}
	assert.Equal(t, 1, moved, "the entrance always has an open east or south neighbour")
}

func TestTerminalQuit(t *testing.T) {
	term := newTestTerminal(t)
	assert.False(t, term.handle(char('q')))
	assert.False(t, term.handle(key(tcell.KeyEscape)))
}

func TestTerminalDrawsHUD(t *testing.T) {
	term := newTestTerminal(t)
	term.draw()
	screen := term.screen.(tcell.SimulationScreen)
	top := (term.renderer.Layout.Height+1)/2 + 1
	var line []rune
	for x := 0; x < 13; x++ {
		r, _, _, _ := screen.GetContent(x, top)
		line = append(line, r)
	}
	assert.Equal(t, "FIND THE EXIT", string(line))

	term.handle(key(tcell.KeyEnter))
	term.hint = true
	term.draw()
	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, halfBlock, r)
}

func TestCellSurfaceBlends(t *testing.T) {
	s := newCellSurface(4, 3)
	w, h := s.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h, "height is padded to whole text lines")

	s.Clear(color.Black)
	s.FillRect(0, 0, 1, 1, color.NRGBA{R: 255, A: 255})
	s.FillRect(1, 0, 0.5, 1, color.NRGBA{G: 255, A: 255})
	s.FillRect(2, 0, 1, 1, color.NRGBA{B: 255, A: 0})

	assert.InDelta(t, 1.0, s.At(0, 0).R, 1e-9)
	assert.InDelta(t, 0.5, s.At(1, 0).G, 1e-9, "half covered")
	assert.InDelta(t, 0.0, s.At(2, 0).B, 1e-9, "transparent")
	assert.InDelta(t, 0.0, s.At(0, 1).R, 1e-9)

	s.FillRect(-5, -5, 100, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	assert.InDelta(t, 1.0, s.At(3, 3).R, 1e-9, "clipped to the buffer")
}
