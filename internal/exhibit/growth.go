package exhibit

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	growFrequency = 6.0
	growDamping   = 0.6 // slightly under-damped, the model overshoots a little
	growEpsilon   = 0.001
)

// growth springs a scale factor from 0 to 1.
type growth struct {
	pos, vel float64
	active   bool
}

func startGrowth() growth {
	return growth{active: true}
}

func (g *growth) step(dt float32) {
	if !g.active || dt <= 0 {
		return
	}
	spring := harmonica.NewSpring(float64(dt), growFrequency, growDamping)
	g.pos, g.vel = spring.Update(g.pos, g.vel, 1)
	if math.Abs(g.pos-1) < growEpsilon && math.Abs(g.vel) < growEpsilon {
		g.pos, g.vel, g.active = 1, 0, false
	}
}
