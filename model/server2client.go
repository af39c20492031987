package model

import (
	"fmt"

	"github.com/zucenko/fogmaze/maze"
)

// Snapshot is a read-only copy of a Game for renderers and observers. Grid
// is shared since grids are never modified after generation.
type Snapshot struct {
	Status    Status
	Grid      *maze.Grid
	Exit      maze.Point
	Player    maze.Point
	Visual    Vec
	Trail     []maze.Point
	Particles []Particle
	Stats     Stats
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Status:    g.Status,
		Grid:      g.Grid,
		Exit:      g.Exit(),
		Player:    g.Player,
		Visual:    g.Visual,
		Trail:     append([]maze.Point(nil), g.Trail...),
		Particles: append([]Particle(nil), g.Particles...),
		Stats:     g.Stats,
	}
}

type Command int

const (
	START Command = iota + 1
	RESTART
	MOVE
)

func (c Command) Name() string {
	switch c {
	case START:
		return "START"
	case RESTART:
		return "RESTART"
	case MOVE:
		return "MOVE"
	default:
		return fmt.Sprintf("N/A(%d)", c)
	}
}

type ClientMessage struct {
	Command   Command
	Direction Direction
}

type ServerMessage struct {
	Setup  []Setup
	Moves  []MoveResult
	Frames []Frame
	Errors []string
}

// Setup carries a freshly generated maze.
type Setup struct {
	Session string
	Grid    maze.Grid
}

type MoveResult struct {
	Direction Direction
	Player    maze.Point
	Success   bool
}

type Frame struct {
	Status Status
	Player maze.Point
	Stats  Stats
}
