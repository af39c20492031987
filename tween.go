package main

import "github.com/tanema/gween"

// Action is what happens while a tween runs and after it finishes. nexts
// chain further tweens onto the game.
type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// next queues t to start when a finishes and returns its action.
func (a *Action) next(t *gween.Tween) *Action {
	action := Action{}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return &action
}

// updateTweens advances every tween by dt seconds and fires finished ones.
func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}
