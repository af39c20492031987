// Package input turns device events into maze moves. Every device is a
// Source of discrete direction triggers; the Controller applies them in order
// through one Mover, so keyboard, on-screen buttons and swipes share the same
// move semantics.
package input

import "github.com/zucenko/fogmaze/model"

// Source yields the direction triggers that happened since the previous Poll.
type Source interface {
	Poll() []model.Direction
}

// Mover is the single move entry point, normally a *model.Game.
type Mover interface {
	AttemptMove(dx, dy int) bool
}

// SourceFunc adapts a function to Source.
type SourceFunc func() []model.Direction

func (f SourceFunc) Poll() []model.Direction {
	return f()
}

type Controller struct {
	Sources []Source
	Mover   Mover

	// OnMove, when set, is told about every attempted move and its outcome.
	OnMove func(d model.Direction, moved bool)
}

func NewController(mover Mover, sources ...Source) *Controller {
	return &Controller{Sources: sources, Mover: mover}
}

func (c *Controller) Add(s Source) {
	c.Sources = append(c.Sources, s)
}

// Update polls every source and applies each trigger immediately. It returns
// the number of moves that went through.
func (c *Controller) Update() int {
	moved := 0
	for _, s := range c.Sources {
		for _, d := range s.Poll() {
			if c.Apply(d) {
				moved++
			}
		}
	}
	return moved
}

func (c *Controller) Apply(d model.Direction) bool {
	dx, dy := d.Delta()
	ok := c.Mover.AttemptMove(dx, dy)
	if c.OnMove != nil {
		c.OnMove(d, ok)
	}
	return ok
}
