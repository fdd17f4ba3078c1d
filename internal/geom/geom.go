// Package geom holds the ray and bounding-volume math used for hotspot picking.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line starting at Origin. Dir is expected to be normalized.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Shape is a pickable volume in world space.
type Shape interface {
	// Intersect returns the distance along r to the nearest hit in front of the origin.
	Intersect(r Ray) (float32, bool)
	// Center is the world-space center used for drawing debug proxies.
	Center() mgl32.Vec3
}

// Sphere is a world-space sphere.
type Sphere struct {
	C      mgl32.Vec3
	Radius float32
}

func (s Sphere) Center() mgl32.Vec3 { return s.C }

// Intersect solves |o + t*d - c|^2 = r^2 for the smallest non-negative t.
// A ray starting inside the sphere hits at its exit point.
func (s Sphere) Intersect(r Ray) (float32, bool) {
	oc := r.Origin.Sub(s.C)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Box is an axis-aligned box.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoxAt returns a box of the given full size centered on c.
func BoxAt(c, size mgl32.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: c.Sub(half), Max: c.Add(half)}
}

func (b Box) Center() mgl32.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Size returns the full extent of the box along each axis.
func (b Box) Size() mgl32.Vec3 { return b.Max.Sub(b.Min) }

// Intersect uses the slab method. Axis-parallel rays outside a slab miss.
func (b Box) Intersect(r Ray) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
