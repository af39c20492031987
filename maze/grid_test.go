package maze

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = `
#####
#...#
###.#
#...#
#####
`

func TestParseString(t *testing.T) {
	g, err := Parse(corridor)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Cols)
	assert.Equal(t, 5, g.Rows)
	assert.True(t, g.Open(Point{2, 1}))
	assert.False(t, g.Open(Point{1, 2}))
	assert.Equal(t, 7, g.OpenCount())
	assert.Equal(t, 6, g.OpenEdges())

	again, err := Parse(g.String())
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
	_, err = Parse("###\n##\n###")
	assert.Error(t, err)
	_, err = Parse("#x#")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	g, err := Parse(corridor)
	require.NoError(t, err)
	assert.NoError(t, g.Check())

	tests := []struct {
		name string
		text string
		want error
	}{
		{"too small", "###\n#.#\n###", ErrTooSmall},
		{"even", "######\n#....#\n#....#\n#....#\n######", ErrEvenDimension},
		{"walled entrance", "#####\n##..#\n###.#\n#...#\n#####", ErrUnplayable},
		{"walled exit", "#####\n#...#\n###.#\n#..##\n#####", ErrUnplayable},
		{"unreachable", "#####\n#...#\n#####\n#...#\n#####", ErrUnplayable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(tt.text)
			require.NoError(t, err)
			assert.ErrorIs(t, g.Check(), tt.want)
		})
	}
}

func TestRead(t *testing.T) {
	g, err := Read(strings.NewReader(corridor))
	require.NoError(t, err)
	assert.Equal(t, 7, g.OpenCount())

	_, err = Read(strings.NewReader("###\n#.#\n###"))
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = Read(strings.NewReader("#######\n#.....#\n#.....#\n#.....#\n#.....#\n#######"))
	assert.ErrorIs(t, err, ErrEvenDimension)
	_, err = Read(strings.NewReader("#####\n##..#\n###.#\n#...#\n#####"))
	assert.ErrorIs(t, err, ErrUnplayable)
	_, err = Read(strings.NewReader("#x#"))
	assert.Error(t, err)
}

func TestAtOutOfBounds(t *testing.T) {
	g, err := Parse(corridor)
	require.NoError(t, err)
	assert.Equal(t, Wall, g.At(Point{-1, 1}))
	assert.Equal(t, Wall, g.At(Point{5, 1}))
	assert.False(t, g.In(Point{1, 5}))
}

func TestSolve(t *testing.T) {
	g, err := Parse(corridor)
	require.NoError(t, err)
	path := g.Solve(g.Entrance(), g.Exit())
	assert.Equal(t, []Point{{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}}, path)

	assert.Nil(t, g.Solve(Point{0, 0}, g.Exit()))
	assert.Equal(t, []Point{{1, 1}}, g.Solve(g.Entrance(), g.Entrance()))
}

func TestSolveGenerated(t *testing.T) {
	g, err := Generate(25, 25, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	path := g.Solve(g.Entrance(), g.Exit())
	require.NotEmpty(t, path)
	assert.Equal(t, g.Entrance(), path[0])
	assert.Equal(t, g.Exit(), path[len(path)-1])
	for i := 1; i < len(path); i++ {
		dx, dy := path[i].X-path[i-1].X, path[i].Y-path[i-1].Y
		assert.Equal(t, 1, dx*dx+dy*dy)
		assert.True(t, g.Open(path[i]))
	}
}
