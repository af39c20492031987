package input

import "github.com/zucenko/fogmaze/model"

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// Stroke manages the current drag state of one pointer.
type Stroke struct {
	source StrokeSource

	// initX and initY represents the position when dragging starts.
	initX int
	initY int

	// currentX and currentY represents the current position
	currentX int
	currentY int

	released bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	x, y := s.source.Position()
	s.currentX = x
	s.currentY = y
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

func (s *Stroke) Position() (int, int) {
	return s.currentX, s.currentY
}

func (s *Stroke) PositionDiff() (int, int) {
	dx := s.currentX - s.initX
	dy := s.currentY - s.initY
	return dx, dy
}

// Swipe classifies the drag by its dominant axis once it is longer than
// threshold pixels along that axis.
func (s *Stroke) Swipe(threshold int) (model.Direction, bool) {
	dx, dy := s.PositionDiff()
	ax, ay := abs(dx), abs(dy)
	switch {
	case ax > threshold && ax >= ay:
		if dx > 0 {
			return model.RIGHT, true
		}
		return model.LEFT, true
	case ay > threshold:
		if dy > 0 {
			return model.DOWN, true
		}
		return model.UP, true
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Swipes tracks live strokes. A stroke fires one direction as soon as it
// crosses the threshold and is then released, so a long drag is still a
// single move. The zero value is ready to use.
type Swipes struct {
	Threshold int
	strokes   map[*Stroke]struct{}
}

func NewSwipes(threshold int) *Swipes {
	return &Swipes{Threshold: threshold, strokes: map[*Stroke]struct{}{}}
}

func (w *Swipes) Begin(source StrokeSource) {
	if w.strokes == nil {
		w.strokes = map[*Stroke]struct{}{}
	}
	w.strokes[NewStroke(source)] = struct{}{}
}

func (w *Swipes) Len() int {
	return len(w.strokes)
}

func (w *Swipes) Poll() []model.Direction {
	var out []model.Direction
	for s := range w.strokes {
		s.Update()
		if !s.IsReleased() {
			if d, ok := s.Swipe(w.Threshold); ok {
				out = append(out, d)
				s.released = true
			}
		}
		if s.IsReleased() {
			delete(w.strokes, s)
		}
	}
	return out
}
