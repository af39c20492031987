package input

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zucenko/fogmaze/model"
)

type recorder struct {
	moves [][2]int
	allow bool
}

func (r *recorder) AttemptMove(dx, dy int) bool {
	r.moves = append(r.moves, [2]int{dx, dy})
	return r.allow
}

type fakeStroke struct {
	x, y     int
	released bool
}

func (f *fakeStroke) Position() (int, int) { return f.x, f.y }
func (f *fakeStroke) IsJustReleased() bool { return f.released }

func TestTriggerFiresOnEdge(t *testing.T) {
	var tr Trigger
	assert.False(t, tr.Update(false))
	assert.True(t, tr.Update(true))
	assert.False(t, tr.Update(true), "held input does not repeat")
	assert.False(t, tr.Update(true))
	assert.False(t, tr.Update(false))
	assert.True(t, tr.Update(true))
}

func TestLevelSource(t *testing.T) {
	held := map[model.Direction]bool{}
	src := NewLevelSource(func(d model.Direction) bool { return held[d] })

	assert.Empty(t, src.Poll())
	held[model.UP] = true
	held[model.LEFT] = true
	assert.Equal(t, []model.Direction{model.LEFT, model.UP}, src.Poll())
	assert.Empty(t, src.Poll())

	held[model.UP] = false
	assert.Empty(t, src.Poll())
	held[model.UP] = true
	assert.Equal(t, []model.Direction{model.UP}, src.Poll())
}

func TestControllerAppliesInOrder(t *testing.T) {
	r := &recorder{allow: true}
	var seen []model.Direction
	c := NewController(r,
		SourceFunc(func() []model.Direction { return []model.Direction{model.RIGHT, model.DOWN} }),
	)
	c.Add(SourceFunc(func() []model.Direction { return []model.Direction{model.LEFT} }))
	c.OnMove = func(d model.Direction, moved bool) {
		assert.True(t, moved)
		seen = append(seen, d)
	}

	assert.Equal(t, 3, c.Update())
	assert.Equal(t, [][2]int{{1, 0}, {0, 1}, {-1, 0}}, r.moves)
	assert.Equal(t, []model.Direction{model.RIGHT, model.DOWN, model.LEFT}, seen)
}

func TestControllerCountsOnlyAccepted(t *testing.T) {
	r := &recorder{allow: false}
	c := NewController(r, SourceFunc(func() []model.Direction { return []model.Direction{model.UP} }))
	assert.Equal(t, 0, c.Update())
	assert.Len(t, r.moves, 1)
}

func TestControllerDrivesGame(t *testing.T) {
	g := model.NewGame(model.Settings{Cols: 5, Rows: 5}, nil, nil)
	assert.NoError(t, g.Start())
	c := NewController(g)

	// from (1,1) at least one of right/down is open in any 5x5 maze
	moved := c.Apply(model.RIGHT) || c.Apply(model.DOWN)
	assert.True(t, moved)
	assert.Equal(t, 1, g.Stats.Moves)
}

func TestPad(t *testing.T) {
	var pointers []image.Point
	pad := NewPad(100, 200, 40, func() []image.Point { return pointers })

	assert.Equal(t, image.Rect(100, 200, 220, 320), pad.Bounds())
	d, ok := pad.Hit(image.Pt(150, 210))
	assert.True(t, ok)
	assert.Equal(t, model.UP, d)
	d, ok = pad.Hit(image.Pt(210, 250))
	assert.True(t, ok)
	assert.Equal(t, model.RIGHT, d)
	_, ok = pad.Hit(image.Pt(105, 205))
	assert.False(t, ok, "corner of the cross is empty")

	assert.Empty(t, pad.Poll())
	pointers = []image.Point{{150, 290}}
	assert.Equal(t, []model.Direction{model.DOWN}, pad.Poll())
	assert.Empty(t, pad.Poll(), "held button fires once")

	pointers = []image.Point{{150, 290}, {110, 250}}
	assert.Equal(t, []model.Direction{model.LEFT}, pad.Poll())

	pointers = nil
	assert.Empty(t, pad.Poll())
	pointers = []image.Point{{150, 290}}
	assert.Equal(t, []model.Direction{model.DOWN}, pad.Poll())
}

func TestStrokeSwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   model.Direction
		ok     bool
	}{
		{"right", 30, 5, model.RIGHT, true},
		{"left", -30, 10, model.LEFT, true},
		{"down", 4, 25, model.DOWN, true},
		{"up", -3, -40, model.UP, true},
		{"short", 10, -10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeStroke{x: 50, y: 50}
			s := NewStroke(src)
			src.x += tt.dx
			src.y += tt.dy
			s.Update()
			d, ok := s.Swipe(20)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, d)
			}
		})
	}
}

func TestSwipesFireOncePerStroke(t *testing.T) {
	w := NewSwipes(20)
	src := &fakeStroke{x: 10, y: 10}
	w.Begin(src)
	assert.Equal(t, 1, w.Len())

	src.x = 15
	assert.Empty(t, w.Poll())
	assert.Equal(t, 1, w.Len())

	src.x = 60
	assert.Equal(t, []model.Direction{model.RIGHT}, w.Poll())
	assert.Equal(t, 0, w.Len())

	src.x = 200
	assert.Empty(t, w.Poll())
}

func TestSwipesTapIsNotAMove(t *testing.T) {
	w := NewSwipes(20)
	src := &fakeStroke{x: 10, y: 10}
	w.Begin(src)
	src.released = true
	assert.Empty(t, w.Poll())
	assert.Equal(t, 0, w.Len())
}

func TestSwipesLiteral(t *testing.T) {
	w := &Swipes{Threshold: 20}
	assert.Empty(t, w.Poll())
	src := &fakeStroke{x: 10, y: 10}
	w.Begin(src)
	assert.Equal(t, 1, w.Len())
	src.y = 50
	assert.Equal(t, []model.Direction{model.DOWN}, w.Poll())
}
