package tour

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-museum/internal/catalog"
	"virtual-museum/internal/exhibit"
	"virtual-museum/internal/hotspot"
	"virtual-museum/internal/input"
	"virtual-museum/internal/overlay"
)

type fakeSink struct{ attached int }

func (s *fakeSink) AttachProxy(hotspot.Proxy)   { s.attached++ }
func (s *fakeSink) DetachProxy(hotspot.ProxyID) { s.attached-- }

type fakeModel struct{ released int }

func (m *fakeModel) Release() { m.released++ }

type fakeClip struct{ released int }

func (c *fakeClip) Release() { c.released++ }

type fakeLoader struct {
	mu     sync.Mutex
	models []*fakeModel
}

func (l *fakeLoader) Fetch(_ context.Context, url string) (string, error) { return url, nil }

func (l *fakeLoader) DecodeModel(string) (exhibit.Model, error) {
	m := &fakeModel{}
	l.mu.Lock()
	l.models = append(l.models, m)
	l.mu.Unlock()
	return m, nil
}

func (l *fakeLoader) DecodeClip(string) (exhibit.Clip, error) { return &fakeClip{}, nil }

type fakeStage struct {
	attached map[exhibit.Model]exhibit.Placement
}

func (s *fakeStage) Attach(m exhibit.Model, p exhibit.Placement) { s.attached[m] = p }
func (s *fakeStage) Place(m exhibit.Model, p exhibit.Placement)  { s.attached[m] = p }
func (s *fakeStage) Detach(m exhibit.Model)                      { delete(s.attached, m) }

type fakeSpeaker struct{ playing bool }

func (s *fakeSpeaker) Play(exhibit.Clip) { s.playing = true }
func (s *fakeSpeaker) Stop()             { s.playing = false }

type fakeLocker struct{ locked bool }

func (l *fakeLocker) Lock()        { l.locked = true }
func (l *fakeLocker) Unlock()      { l.locked = false }
func (l *fakeLocker) Locked() bool { return l.locked }

type fakeLog struct{ lines []string }

func (l *fakeLog) Logf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

type world struct {
	c       *Controller
	sink    *fakeSink
	loader  *fakeLoader
	stage   *fakeStage
	speaker *fakeSpeaker
	locker  *fakeLocker
	log     *fakeLog
}

// testCatalog puts E1 at the origin and starts the camera 100 units away
// looking straight at it.
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Museum: catalog.Museum{ModelURL: "museum.glb"},
		Start:  catalog.Pose{Position: mgl32.Vec3{0, 0, 100}},
		Exhibits: []catalog.Exhibit{{
			Anchor:      mgl32.Vec3{0, 0, 0},
			ModelOffset: mgl32.Vec3{-150, 30, -118},
			ModelScale:  mgl32.Vec3{10, 10, 10},
			ModelURL:    "A.glb",
			AudioURL:    "A.mp3",
			Title:       "E1",
			Description: "first",
		}},
		Pictures: []catalog.Picture{{
			Anchor:  mgl32.Vec3{300, 0, 0},
			VideoID: "abc123",
			Title:   "P1",
		}},
	}
}

func newWorld(t *testing.T, cat *catalog.Catalog, desktop bool) *world {
	t.Helper()
	w := &world{
		sink:    &fakeSink{},
		loader:  &fakeLoader{},
		stage:   &fakeStage{attached: make(map[exhibit.Model]exhibit.Placement)},
		speaker: &fakeSpeaker{},
		locker:  &fakeLocker{},
		log:     &fakeLog{},
	}
	w.c = New(Deps{
		Catalog: cat,
		Sink:    w.sink,
		Stage:   w.stage,
		Speaker: w.speaker,
		Loader:  w.loader,
		Locker:  w.locker,
		Log:     w.log,
	}, Options{Desktop: desktop, Width: 800, Height: 600})
	return w
}

func (w *world) lock() {
	w.locker.Lock()
	w.c.LockChanged(true)
}

func (w *world) frameUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
		w.c.Frame(0)
	}
}

func TestExhibitScenario(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), true)
	c := w.c
	w.lock()
	assert.Equal(t, 2, w.sink.attached)

	c.Click(10, 10, false) // locked clicks pick through the screen center
	assert.Equal(t, exhibit.Loading, c.Session().State())
	assert.Equal(t, overlay.ExhibitPanel, c.Overlay().Current())
	assert.Equal(t, "E1", c.Overlay().Exhibit().Title)
	assert.True(t, c.Overlay().Loading())
	assert.False(t, w.locker.locked)
	assert.False(t, c.Input().IsPointerLocked())

	w.frameUntil(t, func() bool { return c.Session().State() == exhibit.Displayed && !c.Overlay().Loading() })
	require.Len(t, w.loader.models, 1)
	p, ok := w.stage.attached[w.loader.models[0]]
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-150, 30, -118}, p.Offset)
	assert.True(t, w.speaker.playing)

	c.CloseExhibit()
	assert.Equal(t, exhibit.Closed, c.Session().State())
	assert.Equal(t, overlay.None, c.Overlay().Current())
	assert.Empty(t, w.stage.attached)
	assert.Equal(t, 1, w.loader.models[0].released)
	assert.False(t, w.speaker.playing)
	assert.True(t, w.locker.locked)
	assert.True(t, c.Input().IsPointerLocked())
}

func TestResizeUpdatesAspect(t *testing.T) {
	t.Parallel()

	c := newWorld(t, testCatalog(), true).c
	c.Resize(1280, 720)
	assert.Equal(t, float32(1280)/float32(720), c.Rig().Aspect)
	assert.Equal(t, float32(1280), c.Viewport().Width)
	assert.Equal(t, mgl32.Vec2{640, 720 - padMargin - PadRadius}, c.Joystick().Center)

	c.Resize(0, 720)
	assert.Equal(t, float32(1280)/float32(720), c.Rig().Aspect)
}

func TestNavigationWinsAndFlies(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	target := catalog.Pose{Position: mgl32.Vec3{40, 20, -60}}
	cat.Navigation = []catalog.Navigation{{Name: "hall", Anchor: mgl32.Vec3{0, 0, 50}, Target: target}}
	w := newWorld(t, cat, true)
	c := w.c
	w.lock()

	c.Click(0, 0, false)
	require.True(t, c.Rig().Animating())
	assert.Equal(t, exhibit.Closed, c.Session().State())

	// Picks are ignored while the camera is in flight.
	c.Click(0, 0, false)
	assert.Equal(t, exhibit.Closed, c.Session().State())

	for i := 0; i < 600 && c.Rig().Animating(); i++ {
		c.Frame(1.0 / 60)
	}
	assert.False(t, c.Rig().Animating())
	assert.Equal(t, target.Position, c.Rig().Position)
}

func TestMovementGating(t *testing.T) {
	t.Parallel()

	t.Run("desktop needs lock", func(t *testing.T) {
		w := newWorld(t, testCatalog(), true)
		c := w.c
		start := c.Rig().Position

		c.Key('W', true)
		c.Frame(1)
		assert.Equal(t, start, c.Rig().Position)

		w.lock()
		c.Frame(1)
		assert.InDelta(t, start.Z()-c.Rig().MoveSpeed, c.Rig().Position.Z(), 1e-4)
	})

	t.Run("modal stops movement", func(t *testing.T) {
		w := newWorld(t, testCatalog(), false)
		c := w.c
		start := c.Rig().Position

		c.ToggleInstructions()
		c.Key('W', true)
		c.Frame(1)
		assert.Equal(t, start, c.Rig().Position)

		c.CloseInstructions()
		c.Frame(1)
		assert.NotEqual(t, start, c.Rig().Position)
	})

	t.Run("console swallows keys", func(t *testing.T) {
		w := newWorld(t, testCatalog(), false)
		c := w.c
		c.Key('W', true)
		c.SetConsole(true)
		assert.False(t, c.Input().Intent().Any())
		c.Key('W', true)
		assert.False(t, c.Input().Intent().Any())
	})
}

func TestMouseLookNeedsLock(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), true)
	c := w.c

	c.MouseMove(100, 50)
	assert.Zero(t, c.Rig().Yaw)

	w.lock()
	c.MouseMove(100, 50)
	assert.InDelta(t, -100*c.Rig().Sensitivity, c.Rig().Yaw, 1e-6)
	assert.Zero(t, c.Rig().Pitch())
}

func TestClickRequestsLock(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	cat.Exhibits = nil
	w := newWorld(t, cat, true)
	c := w.c

	c.Click(400, 300, true)
	assert.False(t, w.locker.locked, "clicks over UI never lock")

	c.Click(400, 300, false)
	assert.True(t, w.locker.locked)
	assert.True(t, c.Input().IsPointerLocked())
}

func TestClickIntoWorldClosesExhibitPanel(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), true)
	c := w.c
	w.lock()
	c.Click(400, 300, false)
	require.Equal(t, overlay.ExhibitPanel, c.Overlay().Current())

	c.Click(400, 300, false)
	assert.Equal(t, overlay.None, c.Overlay().Current())
	assert.Equal(t, exhibit.Closed, c.Session().State())
	assert.True(t, c.Input().IsPointerLocked())
}

func TestLockDuringModalIsReleased(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), true)
	c := w.c
	c.ToggleInstructions()

	w.lock()
	assert.False(t, w.locker.locked)
	assert.False(t, c.Input().IsPointerLocked())
}

func TestPictureOpensVideo(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), false)
	c := w.c
	c.Rig().Position = mgl32.Vec3{300, 0, 100}

	c.Click(400, 300, false)
	require.Equal(t, overlay.VideoPanel, c.Overlay().Current())
	assert.Equal(t, "https://www.youtube.com/embed/abc123?autoplay=1&rel=0&modestbranding=1", c.Overlay().Video().EmbedURL())

	c.CloseVideo()
	assert.False(t, c.Overlay().IsOpen())
	assert.False(t, w.locker.locked, "touch never locks")
}

func TestTouchJoystick(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), false)
	c := w.c
	center := c.Joystick().Center

	assert.False(t, c.TouchBegin(1, center), "hidden until loaded")
	c.SetLoaded()
	assert.False(t, c.TouchBegin(1, mgl32.Vec2{10, 10}), "outside the pad")
	require.True(t, c.TouchBegin(1, center))

	c.TouchMove(1, center.Add(mgl32.Vec2{0, -40}))
	assert.True(t, c.Input().Intent().Active(input.Forward))

	start := c.Rig().Position
	c.Frame(0.5)
	assert.NotEqual(t, start, c.Rig().Position)

	c.TouchEnd(1, center, false)
	assert.False(t, c.Input().Intent().Any())
	assert.Equal(t, exhibit.Closed, c.Session().State(), "releasing the pad is not a tap")

	c.TouchEnd(2, mgl32.Vec2{400, 300}, false)
	assert.Equal(t, exhibit.Loading, c.Session().State())
}

func TestConsoleCommands(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), true)
	c := w.c
	reg := c.Commands()

	assert.False(t, c.Run(reg, "hello"))

	require.True(t, c.Run(reg, "cmd goto -x 1 -y 2 -z 3 -yaw 0.5"))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Rig().Position)
	assert.Equal(t, float32(0.5), c.Rig().Yaw)

	c.Run(reg, "cmd pose")
	assert.Equal(t, "pose 1.00 2.00 3.00 yaw 0.5000", w.log.lines[len(w.log.lines)-1])

	c.Run(reg, "cmd exhibit -open 7")
	assert.Contains(t, w.log.lines[len(w.log.lines)-1], "out of range")
	assert.Equal(t, exhibit.Closed, c.Session().State())

	c.Run(reg, "cmd video -open 0")
	assert.Equal(t, overlay.VideoPanel, c.Overlay().Current())

	c.Run(reg, "cmd exhibit -open 0")
	assert.Equal(t, overlay.ExhibitPanel, c.Overlay().Current(), "opening an exhibit replaces the video")
	c.Run(reg, "cmd exhibit -close")
	assert.Equal(t, exhibit.Closed, c.Session().State())

	c.Run(reg, "cmd fps")
	assert.True(t, c.ShowFPS())
	c.Run(reg, "cmd hotspots -show=false")
	assert.False(t, c.ShowHotspots())

	c.Run(reg, "cmd help")
	assert.True(t, strings.HasPrefix(w.log.lines[len(w.log.lines)-1], "cmd "))
}

func TestConsoleBlocksPicking(t *testing.T) {
	t.Parallel()

	w := newWorld(t, testCatalog(), false)
	c := w.c
	c.SetConsole(true)
	c.Click(400, 300, false)
	assert.Equal(t, exhibit.Closed, c.Session().State())

	c.SetConsole(false)
	c.Click(400, 300, false)
	assert.Equal(t, exhibit.Loading, c.Session().State())
}
