package sound

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			require.LessOrEqual(t, buf[i][0], 1.0)
			require.GreaterOrEqual(t, buf[i][0], -1.0)
		}
		total += n
		if !ok {
			return total
		}
	}
}

func TestBumpLength(t *testing.T) {
	s := Streamer(BUMP)
	require.NotNil(t, s)
	assert.Equal(t, SampleRate.N(bumpLength), drain(t, s))
	assert.NoError(t, s.Err())
}

func TestWinPlaysEveryNote(t *testing.T) {
	s := Streamer(WIN)
	require.NotNil(t, s)
	assert.Equal(t, len(winNotes)*SampleRate.N(noteLength), drain(t, s))
}

func TestUnknownCue(t *testing.T) {
	assert.Nil(t, Streamer(Cue(99)))
}

func TestSilentPlayer(t *testing.T) {
	p := Open(false)
	assert.False(t, p.Enabled())
	p.Play(WIN)
	p.Close()
}
