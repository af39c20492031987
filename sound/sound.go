// Package sound plays the short cues of the terminal client. Audio is
// optional: when the speaker cannot be opened every cue is silently skipped.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"
)

const SampleRate = beep.SampleRate(44100)

type Cue int

const (
	BUMP Cue = iota
	WIN
)

const (
	bumpLength = 40 * time.Millisecond
	noteLength = 90 * time.Millisecond
	volume     = 0.4
)

// winNotes is a rising C major arpeggio.
var winNotes = []float64{523.25, 659.25, 783.99, 1046.5}

type Player struct {
	enabled bool
}

// Open initialises the speaker when enabled is set. Failure is logged and
// leaves a silent Player.
func Open(enabled bool) *Player {
	p := &Player{}
	if !enabled {
		return p
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		log.Warnf("audio initialization failed: %v", err)
		return p
	}
	p.enabled = true
	return p
}

func (p *Player) Enabled() bool {
	return p.enabled
}

func (p *Player) Play(c Cue) {
	if !p.enabled {
		return
	}
	if s := Streamer(c); s != nil {
		speaker.Play(s)
	}
}

func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}

// Streamer builds a fresh stream for c, or nil for an unknown cue.
func Streamer(c Cue) beep.Streamer {
	switch c {
	case BUMP:
		return tone(110, bumpLength)
	case WIN:
		notes := make([]beep.Streamer, 0, len(winNotes))
		for _, f := range winNotes {
			notes = append(notes, tone(f, noteLength))
		}
		return beep.Seq(notes...)
	default:
		return nil
	}
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return beep.Silence(SampleRate.N(d))
	}
	return &effects.Volume{
		Streamer: beep.Take(SampleRate.N(d), sine),
		Base:     2,
		Volume:   math.Log2(volume),
	}
}
