package model

const (
	// Smoothing is the per-frame share of the gap the visual position closes.
	Smoothing = 0.2
	// ParticleDecay is the life lost by a particle each frame.
	ParticleDecay = 0.02
)

// Active reports whether the frame loop should be running.
func (g *Game) Active() bool {
	return g.Status == PLAYING || g.Status == WON
}

// Step advances one frame: elapsed time while playing, the visual lerp and
// particle physics.
func (g *Game) Step() {
	if !g.Active() {
		return
	}
	if g.Status == PLAYING {
		g.updateElapsed()
	}

	g.Visual.X += (float64(g.Player.X) - g.Visual.X) * Smoothing
	g.Visual.Y += (float64(g.Player.Y) - g.Visual.Y) * Smoothing

	alive := g.Particles[:0]
	for _, p := range g.Particles {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		p.Life -= ParticleDecay
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	g.Particles = alive
}

// updateElapsed never lets the elapsed stat run backwards, even if the clock
// does.
func (g *Game) updateElapsed() {
	elapsed := g.clock.Now().Sub(g.startedAt).Seconds()
	if elapsed > g.Stats.Elapsed {
		g.Stats.Elapsed = elapsed
	}
}
