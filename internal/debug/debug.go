package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"virtual-museum/internal/rig"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the developer overlay in the top-right corner: FPS, heap size and the
// camera pose. It is hidden until ShowFPS is set.
type Debug struct {
	ShowFPS bool

	font       rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount uint32
	lines      [3]string
	memStats   runtime.MemStats
	pose       rig.Pose
}

// New returns a hidden overlay.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the font used for the overlay. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// SetPose records the camera pose shown on the third line.
func (d *Debug) SetPose(p rig.Pose) {
	d.pose = p
}

// Draw renders the overlay when enabled. Call last in the draw loop.
func (d *Debug) Draw() {
	if !d.ShowFPS {
		return
	}
	d.frameCount++
	if d.frameCount%updateInterval == 0 || d.lines[0] == "" {
		runtime.ReadMemStats(&d.memStats)
		d.lines[0] = fmt.Sprintf("FPS: %d", rl.GetFPS())
		d.lines[1] = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		p := d.pose.Position
		d.lines[2] = fmt.Sprintf("Pos: %.1f %.1f %.1f  Yaw: %.2f", p.X(), p.Y(), p.Z(), d.pose.Yaw)
	}

	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}
