package rig

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// flightFrequency and flightDamping give a critically damped ease of roughly one second.
	flightFrequency = 5.0
	flightDamping   = 1.0
	settleDistance  = 0.01
	settleSpeed     = 0.01
)

// axis is one spring-driven coordinate.
type axis struct {
	pos, vel float64
}

// flight animates the rig toward a target pose.
type flight struct {
	target Pose
	axes   [4]axis // x, y, z, yaw
}

// FlyTo starts animating toward p. A flight already in progress is retargeted.
func (r *Rig) FlyTo(p Pose) {
	p.Yaw = r.Yaw + shortestTurn(r.Yaw, p.Yaw)
	f := &flight{target: p}
	f.axes[0].pos = float64(r.Position.X())
	f.axes[1].pos = float64(r.Position.Y())
	f.axes[2].pos = float64(r.Position.Z())
	f.axes[3].pos = float64(r.Yaw)
	if r.flight != nil {
		for i := range f.axes {
			f.axes[i].vel = r.flight.axes[i].vel
		}
	}
	r.flight = f
}

// Animating reports whether a fly-to is in progress.
func (r *Rig) Animating() bool {
	return r.flight != nil
}

// Animate advances a fly-to by dt seconds. The rig snaps to the target once settled.
func (r *Rig) Animate(dt float32) {
	f := r.flight
	if f == nil || dt <= 0 {
		return
	}
	spring := harmonica.NewSpring(float64(dt), flightFrequency, flightDamping)
	goal := [4]float64{
		float64(f.target.Position.X()),
		float64(f.target.Position.Y()),
		float64(f.target.Position.Z()),
		float64(f.target.Yaw),
	}
	settled := true
	for i := range f.axes {
		a := &f.axes[i]
		a.pos, a.vel = spring.Update(a.pos, a.vel, goal[i])
		if math.Abs(a.pos-goal[i]) > settleDistance || math.Abs(a.vel) > settleSpeed {
			settled = false
		}
	}
	if settled {
		r.Position = f.target.Position
		r.Yaw = f.target.Yaw
		r.flight = nil
		return
	}
	r.Position = mgl32.Vec3{float32(f.axes[0].pos), float32(f.axes[1].pos), float32(f.axes[2].pos)}
	r.Yaw = float32(f.axes[3].pos)
}

// CancelFlight stops a fly-to where it is.
func (r *Rig) CancelFlight() {
	r.flight = nil
}

// shortestTurn returns the signed angle from a to b in (-pi, pi].
func shortestTurn(a, b float32) float32 {
	d := math.Mod(float64(b-a), 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return float32(d)
}
