package input

import (
	"image"

	"github.com/zucenko/fogmaze/model"
)

// Pad is the on-screen direction cross used on small screens. Buttons fire
// on press, once per press, like keys.
type Pad struct {
	Buttons  [4]image.Rectangle
	Pointers func() []image.Point

	triggers [4]Trigger
}

// NewPad lays the buttons out as a cross whose top-left corner is at x, y,
// each button size pixels square.
func NewPad(x, y, size int, pointers func() []image.Point) *Pad {
	button := func(col, row int) image.Rectangle {
		at := image.Pt(x+col*size, y+row*size)
		return image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))}
	}
	p := &Pad{Pointers: pointers}
	p.Buttons[model.UP] = button(1, 0)
	p.Buttons[model.LEFT] = button(0, 1)
	p.Buttons[model.RIGHT] = button(2, 1)
	p.Buttons[model.DOWN] = button(1, 2)
	return p
}

// Bounds is the rectangle covering the whole cross.
func (p *Pad) Bounds() image.Rectangle {
	r := p.Buttons[0]
	for _, b := range p.Buttons[1:] {
		r = r.Union(b)
	}
	return r
}

// Hit reports the button under pt.
func (p *Pad) Hit(pt image.Point) (model.Direction, bool) {
	for d, b := range p.Buttons {
		if pt.In(b) {
			return model.Direction(d), true
		}
	}
	return 0, false
}

func (p *Pad) Poll() []model.Direction {
	var held [4]bool
	if p.Pointers != nil {
		for _, pt := range p.Pointers() {
			if d, ok := p.Hit(pt); ok {
				held[d] = true
			}
		}
	}
	var out []model.Direction
	for d := model.RIGHT; d <= model.UP; d++ {
		if p.triggers[d].Update(held[d]) {
			out = append(out, d)
		}
	}
	return out
}
