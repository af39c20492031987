package server

import (
	"math/rand"
	"time"

	"github.com/zucenko/fogmaze/config"
	"github.com/zucenko/fogmaze/model"
)

type Options struct {
	Game       model.Settings
	Seed       int64
	Interval   time.Duration
	FrameEvery int
	Timeout    time.Duration

	ContainerWidth, MaxWidth int
	Radius                   float64
}

func OptionsFrom(s config.Settings) Options {
	return Options{
		Game:           s.Game(),
		Seed:           s.Seed,
		Interval:       s.Interval(),
		FrameEvery:     s.Server.FrameEvery,
		Timeout:        s.Server.Timeout,
		ContainerWidth: s.ContainerWidth,
		MaxWidth:       s.MaxWidth,
		Radius:         s.VisibilityRadius,
	}
}

// rng gives session n its own source. With a fixed seed sessions are
// reproducible in creation order.
func (o Options) rng(n int64) *rand.Rand {
	if o.Seed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano() + n))
	}
	return rand.New(rand.NewSource(o.Seed + n))
}

func (o Options) frameEvery() int {
	if o.FrameEvery <= 0 {
		return 1
	}
	return o.FrameEvery
}
