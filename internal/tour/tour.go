// Package tour is the interaction controller. It turns device events into
// movement, look and picks, and dispatches picks to the camera, the exhibit
// session or the overlay by hotspot kind.
package tour

import (
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/catalog"
	"virtual-museum/internal/events"
	"virtual-museum/internal/exhibit"
	"virtual-museum/internal/hotspot"
	"virtual-museum/internal/input"
	"virtual-museum/internal/overlay"
	"virtual-museum/internal/pick"
	"virtual-museum/internal/rig"
)

const (
	// PadRadius is the touch pad radius in pixels. Touches starting inside it drive the joystick.
	PadRadius = 75
	// padMargin is the gap between the pad and the bottom of the screen.
	padMargin = 20
)

// Deps are the collaborators owned by the platform layer.
type Deps struct {
	Catalog *catalog.Catalog
	Sink    hotspot.Sink
	Stage   exhibit.Stage
	Speaker exhibit.Speaker
	Loader  exhibit.Loader
	Locker  overlay.Locker
	Log     exhibit.Logger
}

// Options tune the controller. Zero values keep the rig defaults.
type Options struct {
	Desktop     bool
	MoveSpeed   float32
	Sensitivity float32
	FovY        float32
	Width       int
	Height      int
}

// Controller owns every piece of interaction state. All methods run on the
// frame goroutine.
type Controller struct {
	catalog *catalog.Catalog
	log     exhibit.Logger
	locker  overlay.Locker
	desktop bool

	input    *input.State
	keys     input.Keymap
	joystick *input.Joystick
	rig      *rig.Rig
	registry *hotspot.Registry
	picker   *pick.Picker
	session  *exhibit.Session
	overlay  *overlay.Controller
	queue    *events.Queue

	viewport     pick.Viewport
	console      bool
	loaded       bool
	showHotspots bool
	showFPS      bool
}

// New builds the controller and populates the hotspot registry from the catalog.
func New(d Deps, o Options) *Controller {
	cat := d.Catalog
	c := &Controller{
		catalog:  cat,
		log:      d.Log,
		locker:   d.Locker,
		desktop:  o.Desktop,
		input:    &input.State{},
		keys:     input.DefaultKeymap(),
		joystick: input.NewJoystick(mgl32.Vec2{}),
		rig:      rig.New(rig.Pose{Position: cat.Start.Position, Yaw: cat.Start.Yaw}),
		registry: hotspot.NewRegistry(d.Sink),
		queue:    &events.Queue{},
	}
	if o.MoveSpeed > 0 {
		c.rig.MoveSpeed = o.MoveSpeed
	}
	if o.Sensitivity > 0 {
		c.rig.Sensitivity = o.Sensitivity
	}
	if o.FovY > 0 {
		c.rig.FovY = o.FovY
	}

	c.overlay = overlay.New(d.Locker, o.Desktop)
	c.session = exhibit.NewSession(d.Loader, d.Stage, d.Speaker, c.overlay, c.queue, d.Log)
	c.overlay.OnClose(overlay.ExhibitPanel, c.session.Close)
	c.picker = pick.New(c.registry, c.rig,
		c.overlay.IsOpen,
		c.rig.Animating,
		c.session.Animating,
		func() bool { return c.console },
	)

	c.registry.Rebuild(cat.Navigation, cat.Exhibits, cat.Pictures)
	c.Resize(o.Width, o.Height)
	return c
}

func (c *Controller) Input() *input.State          { return c.input }
func (c *Controller) Joystick() *input.Joystick    { return c.joystick }
func (c *Controller) Rig() *rig.Rig                { return c.rig }
func (c *Controller) Registry() *hotspot.Registry  { return c.registry }
func (c *Controller) Session() *exhibit.Session    { return c.session }
func (c *Controller) Overlay() *overlay.Controller { return c.overlay }
func (c *Controller) Queue() *events.Queue         { return c.queue }
func (c *Controller) Catalog() *catalog.Catalog    { return c.catalog }
func (c *Controller) Desktop() bool                { return c.desktop }
func (c *Controller) Viewport() pick.Viewport      { return c.viewport }

// ShowHotspots reports whether hotspot proxies should be drawn.
func (c *Controller) ShowHotspots() bool { return c.showHotspots }

// SetShowHotspots toggles proxy drawing.
func (c *Controller) SetShowHotspots(on bool) { c.showHotspots = on }

// ShowFPS reports whether the debug overlay is on.
func (c *Controller) ShowFPS() bool { return c.showFPS }

// SetShowFPS toggles the debug overlay.
func (c *Controller) SetShowFPS(on bool) { c.showFPS = on }

// SetLoaded marks the museum as loaded. The touch joystick appears afterwards.
func (c *Controller) SetLoaded() { c.loaded = true }

// Loaded reports whether the museum finished loading.
func (c *Controller) Loaded() bool { return c.loaded }

// JoystickVisible reports whether the touch pad should be drawn and accept touches.
func (c *Controller) JoystickVisible() bool { return !c.desktop && c.loaded }

// SetConsole records whether the developer console has focus. While it does,
// keys are not mapped to movement and nothing is picked.
func (c *Controller) SetConsole(open bool) {
	c.console = open
	if open {
		c.input.Reset()
	}
}

// ConsoleOpen reports whether the developer console has focus.
func (c *Controller) ConsoleOpen() bool { return c.console }

// Frame advances one frame: pending completions first, then movement and animations.
func (c *Controller) Frame(dt float32) {
	c.queue.Drain()
	c.syncLock()
	if c.canMove() {
		c.rig.Move(dt, c.input.Intent())
	}
	c.rig.Animate(dt)
	c.session.Step(dt)
	c.overlay.Step(dt)
}

func (c *Controller) canMove() bool {
	if c.console || c.overlay.IsOpen() || c.rig.Animating() {
		return false
	}
	if c.desktop {
		return c.input.IsPointerLocked()
	}
	return true
}

// Resize updates the camera aspect, the pick viewport and the pad position.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.rig.Resize(width, height)
	c.viewport = pick.Viewport{Width: float32(width), Height: float32(height)}
	c.joystick.Center = mgl32.Vec2{float32(width) / 2, float32(height) - padMargin - PadRadius}
}

// Key maps a key press or release to a movement intent.
func (c *Controller) Key(key int32, down bool) {
	if c.console {
		return
	}
	c.keys.Apply(c.input, key, down)
}

// MouseMove applies a pointer delta to the heading while the pointer is locked.
func (c *Controller) MouseMove(dx, dy float32) {
	if !c.desktop || !c.input.IsPointerLocked() || c.overlay.IsOpen() {
		return
	}
	c.rig.Look(dx, dy)
}

// LockChanged records a platform pointer-lock notification. A lock taken while
// a modal is open is released again.
func (c *Controller) LockChanged(locked bool) {
	c.input.SetPointerLocked(c.overlay.LockChanged(locked))
}

// Click handles a primary click or tap at pixel (x, y). Clicks over UI are
// ignored. While the pointer is locked the click picks through the screen
// center. On desktop, a click that picks nothing asks for pointer lock.
func (c *Controller) Click(x, y float32, overUI bool) {
	if overUI {
		return
	}
	if c.desktop && c.input.IsPointerLocked() {
		x, y = c.viewport.Width/2, c.viewport.Height/2
	}
	defer c.syncLock()
	if hit, ok := c.picker.Pick(x, y, c.viewport); ok {
		c.dispatch(hit.Record)
		return
	}
	if c.desktop && !c.input.IsPointerLocked() && !c.console {
		c.overlay.RequestLock()
	}
}

// syncLock copies the platform lock state after the overlay may have changed it.
func (c *Controller) syncLock() {
	if c.desktop {
		c.input.SetPointerLocked(c.locker.Locked())
	}
}

func (c *Controller) dispatch(rec *hotspot.Record) {
	switch rec.Kind() {
	case hotspot.Navigation:
		nav, _ := rec.Navigation()
		c.rig.FlyTo(rig.Pose{Position: nav.Target.Position, Yaw: nav.Target.Yaw})
	case hotspot.Exhibit:
		e, _ := rec.Exhibit()
		c.session.Open(e)
	case hotspot.Picture:
		p, _ := rec.Picture()
		c.overlay.OpenVideo(p.VideoID, p.Title, p.Description)
	}
}

// TouchBegin claims touch id for the joystick when it lands on the pad.
// It reports whether the joystick took it.
func (c *Controller) TouchBegin(id int32, p mgl32.Vec2) bool {
	if !c.JoystickVisible() || p.Sub(c.joystick.Center).Len() > PadRadius {
		return false
	}
	return c.joystick.Begin(id, p)
}

// TouchMove forwards a touch position to the joystick.
func (c *Controller) TouchMove(id int32, p mgl32.Vec2) {
	c.joystick.Move(c.input, id, p)
}

// TouchEnd releases the joystick, or treats any other touch as a tap.
func (c *Controller) TouchEnd(id int32, p mgl32.Vec2, overUI bool) {
	if id == c.joystick.Tracking() {
		c.joystick.End(c.input, id)
		return
	}
	c.Click(p.X(), p.Y(), overUI)
}

// CloseExhibit closes the exhibit panel and its session.
func (c *Controller) CloseExhibit() { c.close(overlay.ExhibitPanel) }

// CloseVideo closes the video panel.
func (c *Controller) CloseVideo() { c.close(overlay.VideoPanel) }

// CloseInstructions closes the navigation help.
func (c *Controller) CloseInstructions() { c.close(overlay.InstructionsPanel) }

// ToggleInstructions opens the navigation help, or closes it if open.
func (c *Controller) ToggleInstructions() {
	if c.overlay.Current() == overlay.InstructionsPanel {
		c.close(overlay.InstructionsPanel)
		return
	}
	c.overlay.OpenInstructions()
	c.syncLock()
}

func (c *Controller) close(m overlay.Modal) {
	c.overlay.Close(m)
	c.syncLock()
}

// Escape releases the pointer lock.
func (c *Controller) Escape() {
	if c.desktop && c.input.IsPointerLocked() {
		c.locker.Unlock()
		c.LockChanged(false)
	}
}

func (c *Controller) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Logf(format, args...)
	}
}
