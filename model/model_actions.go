package model

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/clock"
	"github.com/zucenko/fogmaze/maze"
)

const (
	DefaultSize          = 25
	DefaultParticleCount = 80
)

var ErrInvalidTransition = errors.New("model: invalid transition")

func NewGame(settings Settings, clk clock.Provider, rng *rand.Rand) *Game {
	if settings.Cols == 0 {
		settings.Cols = DefaultSize
	}
	if settings.Rows == 0 {
		settings.Rows = DefaultSize
	}
	if settings.ParticleCount <= 0 {
		settings.ParticleCount = DefaultParticleCount
	}
	if settings.Generator == nil {
		settings.Generator = maze.Generate
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		Status:   IDLE,
		settings: settings,
		clock:    clk,
		rng:      rng,
	}
}

func (g *Game) Settings() Settings {
	return g.settings
}

// Resize changes the dimensions used by the next Start or Restart.
func (g *Game) Resize(cols, rows int) {
	g.settings.Cols = cols
	g.settings.Rows = rows
}

// Start begins the first run. A generation error leaves the game IDLE and
// untouched.
func (g *Game) Start() error {
	if g.Status != IDLE {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, g.Status.Name())
	}
	return g.reset()
}

// Restart begins a new run after a win.
func (g *Game) Restart() error {
	if g.Status != WON {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, g.Status.Name())
	}
	return g.reset()
}

// Trigger is the start/restart button: it starts when idle, restarts when
// won and does nothing while playing.
func (g *Game) Trigger() error {
	switch g.Status {
	case IDLE:
		return g.Start()
	case WON:
		return g.Restart()
	default:
		return nil
	}
}

func (g *Game) reset() error {
	grid, err := g.settings.Generator(g.settings.Cols, g.settings.Rows, g.rng)
	if err != nil {
		return fmt.Errorf("model: generate %dx%d: %w", g.settings.Cols, g.settings.Rows, err)
	}
	if err := grid.Check(); err != nil {
		return fmt.Errorf("model: generate %dx%d: %w", g.settings.Cols, g.settings.Rows, err)
	}
	g.Grid = grid
	g.Player = grid.Entrance()
	g.Visual = Vec{X: float64(g.Player.X), Y: float64(g.Player.Y)}
	g.Trail = make([]maze.Point, 0, grid.Cols+grid.Rows)
	g.Particles = nil
	g.Stats = Stats{}
	g.startedAt = g.clock.Now()
	g.Status = PLAYING
	log.Debugf("model: run started on %dx%d", grid.Cols, grid.Rows)
	return nil
}

func (g *Game) Exit() maze.Point {
	if g.Grid == nil {
		return maze.Point{}
	}
	return g.Grid.Exit()
}

// Move is AttemptMove for a Direction.
func (g *Game) Move(d Direction) bool {
	dx, dy := d.Delta()
	return g.AttemptMove(dx, dy)
}

// AttemptMove steps the player one cell. It reports whether the player
// moved; anything but a single cardinal step onto an open cell during a run
// is ignored.
func (g *Game) AttemptMove(dx, dy int) bool {
	if g.Status != PLAYING {
		return false
	}
	if dx*dx+dy*dy != 1 {
		return false
	}
	next := g.Player.Add(dx, dy)
	if !g.Grid.Open(next) {
		return false
	}
	g.Player = next
	g.Trail = append(g.Trail, next)
	g.Stats.Moves++
	if next == g.Grid.Exit() {
		g.win()
	}
	return true
}

func (g *Game) win() {
	g.updateElapsed()
	g.Status = WON
	g.Particles = burst(g.rng, g.Grid.Exit(), g.settings.ParticleCount)
	log.Debugf("model: won in %.2fs with %d moves", g.Stats.Elapsed, g.Stats.Moves)
}
