package input

import "github.com/zucenko/fogmaze/model"

// Trigger fires once per press: Update reports true only on the transition
// from released to pressed, so holding a key never repeats a move.
type Trigger struct {
	pressed bool
}

func (t *Trigger) Update(pressed bool) bool {
	fired := pressed && !t.pressed
	t.pressed = pressed
	return fired
}

// LevelSource turns a "is this direction held" query into edge triggers.
type LevelSource struct {
	Pressed  func(model.Direction) bool
	triggers [4]Trigger
}

func NewLevelSource(pressed func(model.Direction) bool) *LevelSource {
	return &LevelSource{Pressed: pressed}
}

func (s *LevelSource) Poll() []model.Direction {
	var out []model.Direction
	for d := model.RIGHT; d <= model.UP; d++ {
		if s.triggers[d].Update(s.Pressed(d)) {
			out = append(out, d)
		}
	}
	return out
}
