package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	padColor  = rl.NewColor(255, 255, 255, 50)
	ringColor = rl.NewColor(255, 255, 255, 120)
	knobColor = rl.NewColor(255, 255, 255, 170)
)

const knobRadius = 30

// DrawJoystick draws the touch pad at center with its knob offset by knob.
func DrawJoystick(center, knob mgl32.Vec2, radius float32) {
	c := rl.NewVector2(center.X(), center.Y())
	rl.DrawCircleV(c, radius, padColor)
	rl.DrawCircleLinesV(c, radius, ringColor)
	rl.DrawCircleV(rl.NewVector2(c.X+knob.X(), c.Y+knob.Y()), knobRadius, knobColor)
}
