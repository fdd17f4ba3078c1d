// Package rig is the first-person camera: yaw-only look, local-axis movement
// and spring-driven fly-to for navigation hotspots.
package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/geom"
	"virtual-museum/internal/input"
)

const (
	DefaultMoveSpeed   = 30    // world units per second
	DefaultSensitivity = 0.002 // radians per pixel of mouse delta
	DefaultFovY        = 90    // degrees
	defaultNear        = 0.1
	defaultFar         = 1000
)

// worldUp is the axis used for up/down movement and for the camera's up vector.
var worldUp = mgl32.Vec3{0, 1, 0}

// Pose is a camera placement: a position and a heading around the world Y axis.
// Yaw 0 looks down -Z.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32
}

// Rig is the traversable viewpoint. Pitch is fixed at zero.
type Rig struct {
	Position    mgl32.Vec3
	Yaw         float32
	MoveSpeed   float32
	Sensitivity float32
	FovY        float32 // degrees
	Aspect      float32
	Near, Far   float32

	flight *flight
}

// New returns a rig at the given pose with default speed, sensitivity and a 90 degree field of view.
func New(start Pose) *Rig {
	return &Rig{
		Position:    start.Position,
		Yaw:         start.Yaw,
		MoveSpeed:   DefaultMoveSpeed,
		Sensitivity: DefaultSensitivity,
		FovY:        DefaultFovY,
		Aspect:      16.0 / 9.0,
		Near:        defaultNear,
		Far:         defaultFar,
	}
}

// Pose returns the current placement.
func (r *Rig) Pose() Pose {
	return Pose{Position: r.Position, Yaw: r.Yaw}
}

// Pitch is always zero: vertical look is disabled.
func (r *Rig) Pitch() float32 {
	return 0
}

// Look applies a pointer-move delta. Vertical delta is accepted and discarded.
func (r *Rig) Look(dx, dy float32) {
	r.Yaw -= dx * r.Sensitivity
}

// Forward is the horizontal view direction.
func (r *Rig) Forward() mgl32.Vec3 {
	s, c := math.Sincos(float64(r.Yaw))
	return mgl32.Vec3{float32(-s), 0, float32(-c)}
}

// Right is the camera's local +X axis.
func (r *Rig) Right() mgl32.Vec3 {
	s, c := math.Sincos(float64(r.Yaw))
	return mgl32.Vec3{float32(c), 0, float32(-s)}
}

// Up is the camera's up vector; with pitch disabled it is the world up.
func (r *Rig) Up() mgl32.Vec3 {
	return worldUp
}

// Target is a point one unit in front of the camera, for look-at style renderers.
func (r *Rig) Target() mgl32.Vec3 {
	return r.Position.Add(r.Forward())
}

// Move displaces the camera for dt seconds of the given intents. Horizontal
// flags move along the local axes, up/down along world Y.
func (r *Rig) Move(dt float32, in input.Intent) {
	if dt <= 0 {
		return
	}
	step := r.MoveSpeed * dt
	var d mgl32.Vec3
	if in.Active(input.Forward) {
		d = d.Add(r.Forward().Mul(step))
	}
	if in.Active(input.Backward) {
		d = d.Sub(r.Forward().Mul(step))
	}
	if in.Active(input.Left) {
		d = d.Sub(r.Right().Mul(step))
	}
	if in.Active(input.Right) {
		d = d.Add(r.Right().Mul(step))
	}
	if in.Active(input.Up) {
		d = d.Add(worldUp.Mul(step))
	}
	if in.Active(input.Down) {
		d = d.Sub(worldUp.Mul(step))
	}
	r.Position = r.Position.Add(d)
}

// Resize sets the aspect ratio from the render surface size. A zero height is ignored.
func (r *Rig) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.Aspect = float32(width) / float32(height)
}

// Ray casts from the camera through a point in normalized device coordinates
// (x right, y up, both in [-1, 1]).
func (r *Rig) Ray(ndc mgl32.Vec2) geom.Ray {
	tanHalf := float32(math.Tan(float64(mgl32.DegToRad(r.FovY)) / 2))
	dir := r.Forward().
		Add(r.Right().Mul(ndc.X() * tanHalf * r.Aspect)).
		Add(worldUp.Mul(ndc.Y() * tanHalf))
	return geom.Ray{Origin: r.Position, Dir: dir.Normalize()}
}

// View returns the look-at view matrix.
func (r *Rig) View() mgl32.Mat4 {
	return mgl32.LookAtV(r.Position, r.Target(), worldUp)
}

// Projection returns the perspective projection matrix.
func (r *Rig) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(r.FovY), r.Aspect, r.Near, r.Far)
}
