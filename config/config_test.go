package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/fogmaze/maze"
)

const sample = `
cols: 11
rows: 9
seed: 42
visibility_radius: 3.5
max_width: 480
frame_rate: 30
log_level: debug
server:
  port: "9090"
  timeout: 1s
`

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 25, s.Cols)
	assert.Equal(t, 25, s.Rows)
	assert.Equal(t, time.Second/60, s.Interval())
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 11, s.Cols)
	assert.Equal(t, 9, s.Rows)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 3.5, s.VisibilityRadius)
	assert.Equal(t, 480, s.MaxWidth)
	assert.Equal(t, 600, s.ContainerWidth, "unset keys keep defaults")
	assert.Equal(t, "9090", s.Server.Port)
	assert.Equal(t, time.Second, s.Server.Timeout)
	assert.Equal(t, 10, s.Server.FrameEvery)

	game := s.Game()
	assert.Equal(t, 11, game.Cols)
	assert.Equal(t, 9, game.Rows)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"even cols", "cols: 24"},
		{"too small", "rows: 3"},
		{"radius", "visibility_radius: 0"},
		{"frame rate", "frame_rate: 0"},
		{"width", "container_width: -1"},
		{"particles", "particles: -5"},
		{"log level", "log_level: loud"},
		{"yaml", "cols: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("cols: 6"))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), maze.ErrEvenDimension.Error())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MAZE_COLS": "15",
		"MAZE_ROWS": "13",
		"MAZE_SEED": "7",
		"PORT":      "7000",
		"LOG_LEVEL": "warn",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	s := Default()
	require.NoError(t, s.ApplyEnv(lookup))
	assert.Equal(t, 15, s.Cols)
	assert.Equal(t, 13, s.Rows)
	assert.Equal(t, int64(7), s.Seed)
	assert.Equal(t, "7000", s.Server.Port)
	assert.Equal(t, "warn", s.LogLevel)

	env["MAZE_COLS"] = "wide"
	assert.ErrorIs(t, s.ApplyEnv(lookup), ErrInvalid)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 11, s.Cols)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRandSeeded(t *testing.T) {
	s := Default()
	s.Seed = 5
	assert.Equal(t, s.Rand().Int63(), s.Rand().Int63())
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cols: 11\nrows: 11\n"), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("cols: 21\nrows: 15\n"), 0o644))
	select {
	case s := <-w.Updates:
		assert.Equal(t, 21, s.Cols)
		assert.Equal(t, 15, s.Rows)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	require.NoError(t, os.WriteFile(path, []byte("cols: 4\n"), 0o644))
	select {
	case err := <-w.Errors:
		assert.ErrorIs(t, err, ErrInvalid)
	case <-time.After(5 * time.Second):
		t.Fatal("no error for invalid reload")
	}
}
