package model

import (
	"math"
	"math/rand"

	"github.com/zucenko/fogmaze/maze"
)

const (
	particleMinSpeed = 0.04
	particleMaxSpeed = 0.18
	particleMinSize  = 0.12
	particleMaxSize  = 0.3
)

// burst scatters n particles outward from the centre of cell at.
func burst(rng *rand.Rand, at maze.Point, n int) []Particle {
	particles := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := particleMinSpeed + rng.Float64()*(particleMaxSpeed-particleMinSpeed)
		particles = append(particles, Particle{
			Pos:   Vec{X: float64(at.X), Y: float64(at.Y)},
			Vel:   Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Life:  1,
			Color: ColorTag(rng.Intn(int(ColorTagCount))),
			Size:  particleMinSize + rng.Float64()*(particleMaxSize-particleMinSize),
		})
	}
	return particles
}
