// Package pick resolves a screen position to the nearest hotspot under it.
package pick

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/geom"
	"virtual-museum/internal/hotspot"
)

// Camera casts rays through normalized device coordinates.
type Camera interface {
	Ray(ndc mgl32.Vec2) geom.Ray
}

// Blocker reports a state in which world interaction is suppressed,
// such as an open modal or an animation in flight.
type Blocker func() bool

// Viewport is the client size of the render surface in pixels.
type Viewport struct {
	Width, Height float32
}

// NDC converts a pixel position inside vp to normalized device coordinates.
func NDC(x, y float32, vp Viewport) mgl32.Vec2 {
	return mgl32.Vec2{
		x/vp.Width*2 - 1,
		-(y/vp.Height)*2 + 1,
	}
}

// Hit is a resolved pick.
type Hit struct {
	Record   *hotspot.Record
	Node     hotspot.ProxyID
	Distance float32
}

// Picker intersects pointer rays against the registry in priority order.
type Picker struct {
	reg      *hotspot.Registry
	cam      Camera
	blockers []Blocker
}

// New returns a picker over reg. Every blocker is consulted before casting.
func New(reg *hotspot.Registry, cam Camera, blockers ...Blocker) *Picker {
	return &Picker{reg: reg, cam: cam, blockers: blockers}
}

// Blocked reports whether any blocker currently suppresses picking.
func (p *Picker) Blocked() bool {
	for _, b := range p.blockers {
		if b() {
			return true
		}
	}
	return false
}

// Pick resolves the pixel (x, y). Navigation hotspots win over exhibits, and
// exhibits over pictures; within a kind the nearest node wins.
func (p *Picker) Pick(x, y float32, vp Viewport) (Hit, bool) {
	if vp.Width <= 0 || vp.Height <= 0 || p.Blocked() {
		return Hit{}, false
	}
	ray := p.cam.Ray(NDC(x, y, vp))
	for _, k := range hotspot.Kinds() {
		hits := p.intersect(ray, k)
		if len(hits) == 0 {
			continue
		}
		return hits[0], true
	}
	return Hit{}, false
}

// intersect returns the hits of one kind sorted nearest first. Nodes that do
// not resolve to a registered record are dropped.
func (p *Picker) intersect(ray geom.Ray, k hotspot.Kind) []Hit {
	var hits []Hit
	for _, proxy := range p.reg.Proxies(k) {
		for _, n := range proxy.Nodes() {
			t, ok := n.Shape.Intersect(ray)
			if !ok {
				continue
			}
			rec, ok := p.reg.Owner(n.ID)
			if !ok {
				continue
			}
			hits = append(hits, Hit{Record: rec, Node: n.ID, Distance: t})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
