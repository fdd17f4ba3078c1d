package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultJoystickRadius is the furthest the knob travels from the pad center, in pixels.
	DefaultJoystickRadius = 45
	// JoystickThreshold is the normalized displacement a direction must exceed to activate.
	JoystickThreshold = 0.2
)

// NoTouch marks a joystick that is not tracking any touch point.
const NoTouch int32 = -1

// Joystick maps a single tracked touch point on a circular pad to horizontal intents.
type Joystick struct {
	Center    mgl32.Vec2
	MaxRadius float32

	touch int32
	knob  mgl32.Vec2
}

// NewJoystick returns an idle joystick centered at c.
func NewJoystick(c mgl32.Vec2) *Joystick {
	return &Joystick{Center: c, MaxRadius: DefaultJoystickRadius, touch: NoTouch}
}

// Begin starts tracking touch id if no other touch is tracked. It returns whether
// the touch was claimed. The initial position moves the knob but sets no intents.
func (j *Joystick) Begin(id int32, p mgl32.Vec2) bool {
	if j.touch != NoTouch {
		return false
	}
	j.touch = id
	j.knob = j.clamp(p.Sub(j.Center))
	return true
}

// Move updates intents from the tracked touch. Moves of other touches are ignored.
func (j *Joystick) Move(s *State, id int32, p mgl32.Vec2) {
	if j.touch == NoTouch || id != j.touch {
		return
	}
	j.knob = j.clamp(p.Sub(j.Center))
	f, b, l, r := Displacement(j.knob, j.MaxRadius)
	s.SetIntent(Forward, f > JoystickThreshold)
	s.SetIntent(Backward, b > JoystickThreshold)
	s.SetIntent(Left, l > JoystickThreshold)
	s.SetIntent(Right, r > JoystickThreshold)
}

// End releases the tracked touch, clears horizontal intents and recenters the knob.
func (j *Joystick) End(s *State, id int32) {
	if j.touch == NoTouch || id != j.touch {
		return
	}
	j.touch = NoTouch
	j.knob = mgl32.Vec2{}
	s.SetIntent(Forward, false)
	s.SetIntent(Backward, false)
	s.SetIntent(Left, false)
	s.SetIntent(Right, false)
}

// Tracking returns the tracked touch id, or NoTouch.
func (j *Joystick) Tracking() int32 {
	return j.touch
}

// Knob is the knob offset from the pad center, clamped to MaxRadius.
func (j *Joystick) Knob() mgl32.Vec2 {
	return j.knob
}

func (j *Joystick) clamp(d mgl32.Vec2) mgl32.Vec2 {
	l := d.Len()
	if l <= j.MaxRadius || l == 0 {
		return d
	}
	return d.Mul(j.MaxRadius / l)
}

// Displacement splits a pad-relative offset into four non-negative magnitudes
// normalized by maxRadius. Screen Y grows downward, so negative dy is forward.
func Displacement(d mgl32.Vec2, maxRadius float32) (forward, backward, left, right float32) {
	if maxRadius <= 0 {
		return 0, 0, 0, 0
	}
	forward = float32(math.Max(0, float64(-d.Y()/maxRadius)))
	backward = float32(math.Max(0, float64(d.Y()/maxRadius)))
	left = float32(math.Max(0, float64(-d.X()/maxRadius)))
	right = float32(math.Max(0, float64(d.X()/maxRadius)))
	return forward, backward, left, right
}
