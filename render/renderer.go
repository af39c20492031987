package render

import (
	"math"
	"time"

	"github.com/zucenko/fogmaze/maze"
	"github.com/zucenko/fogmaze/model"
)

const (
	DefaultRadius = 5.0

	trailMinAlpha = 0.08
	trailMaxAlpha = 0.5
	floorAlpha    = 0.35
	goalBase      = 0.55
	goalSwing     = 0.15
	goalRate      = 4.0
)

type Renderer struct {
	Layout  Layout
	Palette Palette
	// Radius is the fog-of-war reveal distance in cells.
	Radius float64
}

func NewRenderer(layout Layout, radius float64) *Renderer {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Renderer{Layout: layout, Palette: DefaultPalette, Radius: radius}
}

// Visibility is the fog opacity of a cell dist cells away from the viewer:
// 1 at the viewer, falling linearly to 0 at radius.
func Visibility(dist, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	v := 1 - dist/radius
	if v < 0 {
		return 0
	}
	return v
}

// Draw paints one frame of snap. t is the time since the frame loop started
// and only drives the goal pulse.
func (r *Renderer) Draw(s Surface, snap *model.Snapshot, t time.Duration) {
	s.Clear(r.Palette.Background)
	if snap.Grid == nil {
		return
	}
	cs := r.cellSize(snap.Grid)

	r.drawTrail(s, snap, cs)
	r.drawCells(s, snap, cs)
	r.drawGoal(s, snap.Exit, cs, t)
	r.drawPlayer(s, snap.Visual, cs)
	if snap.Status == model.WON {
		r.drawParticles(s, snap.Particles, cs)
	}
}

// cellSize follows the grid rather than the layout so a grid generated with
// new dimensions still fills the mounted width.
func (r *Renderer) cellSize(g *maze.Grid) float64 {
	if g.Cols == r.Layout.Cols || g.Cols == 0 {
		return r.Layout.CellSize
	}
	return float64(r.Layout.Width) / float64(g.Cols)
}

func (r *Renderer) drawTrail(s Surface, snap *model.Snapshot, cs float64) {
	n := len(snap.Trail)
	for i, p := range snap.Trail {
		a := trailMinAlpha + (trailMaxAlpha-trailMinAlpha)*float64(i+1)/float64(n)
		s.FillRect(float64(p.X)*cs, float64(p.Y)*cs, cs, cs, fade(r.Palette.Trail, a))
	}
}

func (r *Renderer) drawCells(s Surface, snap *model.Snapshot, cs float64) {
	g := snap.Grid
	reveal := snap.Status == model.WON
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			a := 1.0
			if !reveal {
				a = Visibility(math.Hypot(float64(x)-snap.Visual.X, float64(y)-snap.Visual.Y), r.Radius)
				if a <= 0 {
					continue
				}
			}
			if g.Open(maze.Point{X: x, Y: y}) {
				s.FillRect(float64(x)*cs, float64(y)*cs, cs, cs, fade(r.Palette.Floor, a*floorAlpha))
			} else {
				s.FillRect(float64(x)*cs, float64(y)*cs, cs, cs, fade(r.Palette.Wall, a))
			}
		}
	}
}

func (r *Renderer) drawGoal(s Surface, exit maze.Point, cs float64, t time.Duration) {
	size := cs * (goalBase + goalSwing*math.Sin(t.Seconds()*goalRate))
	cx, cy := (float64(exit.X)+0.5)*cs, (float64(exit.Y)+0.5)*cs
	s.FillRect(cx-size/2, cy-size/2, size, size, r.Palette.Goal)
}

func (r *Renderer) drawPlayer(s Surface, at model.Vec, cs float64) {
	cx, cy := (at.X+0.5)*cs, (at.Y+0.5)*cs
	for _, glow := range []struct{ size, alpha float64 }{{1.2, 0.15}, {0.9, 0.3}} {
		size := cs * glow.size
		s.FillRect(cx-size/2, cy-size/2, size, size, fade(r.Palette.Glow, glow.alpha))
	}
	size := cs * 0.55
	s.FillRect(cx-size/2, cy-size/2, size, size, r.Palette.Player)
}

func (r *Renderer) drawParticles(s Surface, ps []model.Particle, cs float64) {
	for _, p := range ps {
		size := p.Size * cs
		cx, cy := (p.Pos.X+0.5)*cs, (p.Pos.Y+0.5)*cs
		s.FillRect(cx-size/2, cy-size/2, size, size, fade(r.Palette.Particles[p.Color], p.Life))
	}
}
