package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reachable flood-fills open cells from p.
func reachable(g *Grid, p Point) int {
	seen := map[Point]bool{p: true}
	stack := []Point{p}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4]Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
			next := curr.Add(d.X, d.Y)
			if g.Open(next) && !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return len(seen)
}

func TestGeneratePerfectMaze(t *testing.T) {
	sizes := []struct{ cols, rows int }{
		{5, 5}, {7, 5}, {5, 9}, {11, 11}, {25, 25}, {31, 17},
	}
	for _, size := range sizes {
		for seed := int64(1); seed <= 20; seed++ {
			g, err := Generate(size.cols, size.rows, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)

			assert.True(t, g.Open(g.Entrance()), "entrance %dx%d seed %d", size.cols, size.rows, seed)
			assert.True(t, g.Open(g.Exit()), "exit %dx%d seed %d", size.cols, size.rows, seed)

			open := g.OpenCount()
			assert.Equal(t, open, reachable(g, g.Entrance()), "connected %dx%d seed %d", size.cols, size.rows, seed)

			edges := g.OpenEdges()
			assert.True(t, edges == open-1 || edges == open, "tree edges %d open %d", edges, open)
		}
	}
}

func TestGenerateVisitsWholeLattice(t *testing.T) {
	g, err := Generate(15, 11, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for y := 1; y < g.Rows-1; y += 2 {
		for x := 1; x < g.Cols-1; x += 2 {
			assert.True(t, g.Open(Point{x, y}), "lattice cell %d,%d", x, y)
		}
	}
}

func TestGenerateKeepsBorder(t *testing.T) {
	g, err := Generate(13, 9, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	for x := 0; x < g.Cols; x++ {
		assert.False(t, g.Open(Point{x, 0}))
		assert.False(t, g.Open(Point{x, g.Rows - 1}))
	}
	for y := 0; y < g.Rows; y++ {
		assert.False(t, g.Open(Point{0, y}))
		assert.False(t, g.Open(Point{g.Cols - 1, y}))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(21, 21, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Generate(21, 21, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestGenerateRejectsDimensions(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		want       error
	}{
		{"too narrow", 3, 5, ErrTooSmall},
		{"too short", 5, 3, ErrTooSmall},
		{"zero", 0, 0, ErrTooSmall},
		{"negative", -7, 9, ErrTooSmall},
		{"even cols", 6, 5, ErrEvenDimension},
		{"even rows", 25, 24, ErrEvenDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Generate(tt.cols, tt.rows, rand.New(rand.NewSource(1)))
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}
