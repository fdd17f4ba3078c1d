package platform

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/ui"
)

// touch is a contact seen on the previous frame.
type touch struct {
	pos     mgl32.Vec2
	overUI  bool
	claimed bool // taken by the joystick
}

// poll turns this frame's raylib device state into controller calls.
func (a *App) poll() {
	if a.desktop && a.locker.Locked() && !rl.IsWindowFocused() {
		a.ctl.Escape()
	}
	if !a.term.IsOpen() {
		a.pollKeys()
	}
	if a.desktop {
		a.pollMouse()
	} else {
		a.pollTouches()
	}
}

func (a *App) pollKeys() {
	for key := range a.keys {
		if rl.IsKeyPressed(key) {
			a.ctl.Key(key, true)
		}
		if rl.IsKeyReleased(key) {
			a.ctl.Key(key, false)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.ctl.Escape()
	}
}

func (a *App) pollMouse() {
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		a.ctl.MouseMove(d.X, d.Y)
	}
	if !rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		return
	}
	p := rl.GetMousePosition()
	if a.locker.Locked() {
		// The cursor is hidden; UI under its stale position must not swallow the click.
		a.ctl.Click(p.X, p.Y, false)
		return
	}
	a.tap(p.X, p.Y)
}

// pollTouches diffs the current touch points against the previous frame:
// new ids begin, known ids move, vanished ids end.
func (a *App) pollTouches() {
	seen := make(map[int32]bool, len(a.touches))
	for i := int32(0); i < rl.GetTouchPointCount(); i++ {
		id := rl.GetTouchPointId(i)
		v := rl.GetTouchPosition(i)
		p := mgl32.Vec2{v.X, v.Y}
		seen[id] = true

		t, known := a.touches[id]
		if !known {
			_, overUI := a.ui.HitTest(p.X(), p.Y())
			t = touch{overUI: overUI}
			if !overUI {
				t.claimed = a.ctl.TouchBegin(id, p)
			}
		} else if t.claimed {
			a.ctl.TouchMove(id, p)
		}
		t.pos = p
		a.touches[id] = t
	}
	for id, t := range a.touches {
		if seen[id] {
			continue
		}
		delete(a.touches, id)
		if t.claimed {
			a.ctl.TouchEnd(id, t.pos, false)
			continue
		}
		if t.overUI {
			a.action(t.pos.X(), t.pos.Y())
			continue
		}
		a.ctl.TouchEnd(id, t.pos, false)
	}
}

// tap handles a click or tap at (x, y): a UI button runs its action, other UI
// swallows the click, and anything else goes to the world.
func (a *App) tap(x, y float32) {
	if a.action(x, y) {
		return
	}
	a.ctl.Click(x, y, false)
}

// action runs the button under (x, y) and reports whether any UI was hit.
func (a *App) action(x, y float32) bool {
	act, hit := a.ui.ActionAt(x, y)
	if !hit {
		return false
	}
	switch act {
	case ui.CloseExhibit:
		a.ctl.CloseExhibit()
	case ui.CloseVideo:
		a.ctl.CloseVideo()
	case ui.WatchVideo:
		if v := a.ctl.Overlay().Video(); v != nil {
			rl.OpenURL(v.EmbedURL())
		}
	case ui.ToggleInstructions:
		a.ctl.ToggleInstructions()
	case ui.CloseInstructions:
		a.ctl.CloseInstructions()
	case ui.GoHome:
		if a.prefs.HomeURL != "" {
			rl.OpenURL(a.prefs.HomeURL)
		}
	case ui.Fullscreen:
		if !a.desktop {
			rl.ToggleFullscreen()
		}
	}
	return true
}
