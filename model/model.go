package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zucenko/fogmaze/clock"
	"github.com/zucenko/fogmaze/maze"
)

type Status int

const (
	IDLE Status = iota + 1
	PLAYING
	WON
)

func (s Status) Name() string {
	switch s {
	case IDLE:
		return "IDLE"
	case PLAYING:
		return "PLAYING"
	case WON:
		return "WON"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Direction indexes the four cardinal steps clockwise from east, so the
// opposite of d is (d+2)%4.
type Direction int

const (
	RIGHT Direction = iota
	DOWN
	LEFT
	UP
)

var deltas = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func (d Direction) Valid() bool {
	return d >= RIGHT && d <= UP
}

// Delta is the unit step of d, or 0, 0 for an invalid direction.
func (d Direction) Delta() (dx, dy int) {
	if !d.Valid() {
		return 0, 0
	}
	return deltas[d][0], deltas[d][1]
}

// Opposite returns the reverse of d; an invalid direction is returned as is.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	return (d + 2) % 4
}

func (d Direction) Name() string {
	switch d {
	case RIGHT:
		return "RIGHT"
	case DOWN:
		return "DOWN"
	case LEFT:
		return "LEFT"
	case UP:
		return "UP"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

type Vec struct {
	X, Y float64
}

type ColorTag int

const (
	SPARK ColorTag = iota
	EMBER
	GLOW
	ColorTagCount
)

type Particle struct {
	Pos, Vel Vec
	Life     float64
	Color    ColorTag
	Size     float64
}

type Stats struct {
	Elapsed float64
	Moves   int
}

// Generator builds a fresh grid for a run.
type Generator func(cols, rows int, rng *rand.Rand) (*maze.Grid, error)

type Settings struct {
	Cols, Rows    int
	ParticleCount int
	Generator     Generator
}

// Game is the single live maze run. It is owned by one goroutine; input and
// the frame loop both mutate it through its methods.
type Game struct {
	Status    Status
	Grid      *maze.Grid
	Player    maze.Point
	Visual    Vec
	Trail     []maze.Point
	Particles []Particle
	Stats     Stats

	settings  Settings
	clock     clock.Provider
	rng       *rand.Rand
	startedAt time.Time
}
