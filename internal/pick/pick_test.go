package pick

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-museum/internal/catalog"
	"virtual-museum/internal/geom"
	"virtual-museum/internal/hotspot"
	"virtual-museum/internal/rig"
)

type nopSink struct{}

func (nopSink) AttachProxy(hotspot.Proxy)   {}
func (nopSink) DetachProxy(hotspot.ProxyID) {}

var vp = Viewport{Width: 800, Height: 600}

func newRegistry(nav []catalog.Navigation, ex []catalog.Exhibit, pic []catalog.Picture) *hotspot.Registry {
	reg := hotspot.NewRegistry(nopSink{})
	reg.Rebuild(nav, ex, pic)
	return reg
}

func TestNDC(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mgl32.Vec2{0, 0}, NDC(400, 300, vp))
	assert.Equal(t, mgl32.Vec2{-1, 1}, NDC(0, 0, vp))
	assert.Equal(t, mgl32.Vec2{1, -1}, NDC(800, 600, vp))
}

func TestPickPrefersNavigationOverNearerExhibit(t *testing.T) {
	t.Parallel()

	reg := newRegistry(
		[]catalog.Navigation{{Name: "far", Anchor: mgl32.Vec3{0, 0, -200}}},
		[]catalog.Exhibit{{Title: "near", ModelURL: "a", Anchor: mgl32.Vec3{0, 0, -40}}},
		nil,
	)
	p := New(reg, rig.New(rig.Pose{}))

	hit, ok := p.Pick(400, 300, vp)
	require.True(t, ok)
	assert.Equal(t, hotspot.Navigation, hit.Record.Kind())
}

func TestPickNearestWithinKind(t *testing.T) {
	t.Parallel()

	reg := newRegistry(nil, []catalog.Exhibit{
		{Title: "far", ModelURL: "a", Anchor: mgl32.Vec3{0, 0, -150}},
		{Title: "near", ModelURL: "b", Anchor: mgl32.Vec3{0, 0, -60}},
	}, []catalog.Picture{{VideoID: "v", Anchor: mgl32.Vec3{0, 0, -30}}})
	p := New(reg, rig.New(rig.Pose{}))

	hit, ok := p.Pick(400, 300, vp)
	require.True(t, ok)
	e, ok := hit.Record.Exhibit()
	require.True(t, ok)
	assert.Equal(t, "near", e.Title)
	assert.InDelta(t, 60-hotspot.ExhibitRadius, hit.Distance, 1e-3)
}

func TestPickResolvesNavigationChildNode(t *testing.T) {
	t.Parallel()

	// The floor marker sits one radius below the anchor and is wider than the
	// sphere at its corners; aim straight down at a corner.
	reg := newRegistry([]catalog.Navigation{{Name: "spot", Anchor: mgl32.Vec3{30, 10, 0}, Radius: 2}}, nil, nil)
	p := New(reg, downCamera{origin: mgl32.Vec3{31.9, 50, 1.9}})

	hit, ok := p.Pick(400, 300, vp)
	require.True(t, ok)
	assert.Equal(t, reg.Proxies(hotspot.Navigation)[0].Children[0].ID, hit.Node)
	n, ok := hit.Record.Navigation()
	require.True(t, ok)
	assert.Equal(t, "spot", n.Name)
}

func TestPickMissAndPictureFallback(t *testing.T) {
	t.Parallel()

	reg := newRegistry(nil, nil, []catalog.Picture{{VideoID: "v", Anchor: mgl32.Vec3{0, 0, -100}}})
	p := New(reg, rig.New(rig.Pose{}))

	hit, ok := p.Pick(400, 300, vp)
	require.True(t, ok)
	assert.Equal(t, hotspot.Picture, hit.Record.Kind())

	_, ok = p.Pick(0, 0, vp)
	assert.False(t, ok)
}

func TestPickBlocked(t *testing.T) {
	t.Parallel()

	reg := newRegistry(nil, []catalog.Exhibit{{Title: "e", ModelURL: "a", Anchor: mgl32.Vec3{0, 0, -40}}}, nil)
	open := true
	p := New(reg, rig.New(rig.Pose{}), func() bool { return false }, func() bool { return open })

	_, ok := p.Pick(400, 300, vp)
	assert.False(t, ok)

	open = false
	_, ok = p.Pick(400, 300, vp)
	assert.True(t, ok)

	_, ok = p.Pick(400, 300, Viewport{})
	assert.False(t, ok)
}

type downCamera struct{ origin mgl32.Vec3 }

func (c downCamera) Ray(mgl32.Vec2) geom.Ray {
	return geom.Ray{Origin: c.origin, Dir: mgl32.Vec3{0, -1, 0}}
}
