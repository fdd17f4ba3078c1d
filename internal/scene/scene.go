// Package scene draws the museum: the environment skybox, the museum model,
// hotspot proxies and the exhibit stage, seen through a camera synced from the rig.
package scene

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/exhibit"
	"virtual-museum/internal/hotspot"
	"virtual-museum/internal/rig"
)

// Scene holds a 3D camera and everything drawn between BeginMode3D and EndMode3D.
// It is the hotspot sink and the exhibit stage.
type Scene struct {
	Camera       rl.Camera3D
	ShowHotspots bool

	sky         skybox
	museum      *Model
	museumScale rl.Vector3

	proxies  map[hotspot.ProxyID]hotspot.Proxy
	order    []hotspot.ProxyID
	exhibits map[*Model]exhibit.Placement
}

var (
	_ hotspot.Sink  = (*Scene)(nil)
	_ exhibit.Stage = (*Scene)(nil)
)

// New returns an empty scene with a perspective camera.
func New() *Scene {
	s := &Scene{
		proxies:  make(map[hotspot.ProxyID]hotspot.Proxy),
		exhibits: make(map[*Model]exhibit.Placement),
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = rig.DefaultFovY
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// LoadEnvironment sets the skybox from an equirectangular panorama or a cubemap image.
func (s *Scene) LoadEnvironment(path string) error {
	s.sky.unload()
	return s.sky.load(path)
}

// SetMuseum places the museum model at the origin with the given scale, replacing any previous one.
func (s *Scene) SetMuseum(m *Model, scale mgl32.Vec3) {
	if s.museum != nil {
		s.museum.Release()
	}
	s.museum = m
	s.museumScale = vec3(scale)
}

// SyncCamera copies the rig's pose and field of view into the raylib camera.
func (s *Scene) SyncCamera(r *rig.Rig) {
	s.Camera.Position = vec3(r.Position)
	s.Camera.Target = vec3(r.Target())
	s.Camera.Up = vec3(r.Up())
	s.Camera.Fovy = r.FovY
}

// AttachProxy implements hotspot.Sink.
func (s *Scene) AttachProxy(p hotspot.Proxy) {
	if _, ok := s.proxies[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.proxies[p.ID] = p
}

// DetachProxy implements hotspot.Sink.
func (s *Scene) DetachProxy(id hotspot.ProxyID) {
	if _, ok := s.proxies[id]; !ok {
		return
	}
	delete(s.proxies, id)
	i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= id })
	if i < len(s.order) && s.order[i] == id {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

// Attach implements exhibit.Stage. Models not created by LoadModel are ignored.
func (s *Scene) Attach(m exhibit.Model, p exhibit.Placement) {
	if sm, ok := m.(*Model); ok {
		s.exhibits[sm] = p
	}
}

// Place implements exhibit.Stage.
func (s *Scene) Place(m exhibit.Model, p exhibit.Placement) {
	if sm, ok := m.(*Model); ok {
		if _, attached := s.exhibits[sm]; attached {
			s.exhibits[sm] = p
		}
	}
}

// Detach implements exhibit.Stage.
func (s *Scene) Detach(m exhibit.Model) {
	if sm, ok := m.(*Model); ok {
		delete(s.exhibits, sm)
	}
}

// Draw renders the 3D scene. Call after ClearBackground and before the 2D overlay.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	s.sky.draw(s.Camera.Position)
	if s.museum != nil {
		s.museum.draw(rl.NewVector3(0, 0, 0), s.museumScale)
	}
	for m, p := range s.exhibits {
		m.draw(vec3(p.Offset), vec3(p.Scale))
	}
	s.drawProxies()
	rl.EndMode3D()
}

// Unload frees the environment, the museum and any attached exhibit models.
func (s *Scene) Unload() {
	s.sky.unload()
	if s.museum != nil {
		s.museum.Release()
		s.museum = nil
	}
	for m := range s.exhibits {
		m.Release()
		delete(s.exhibits, m)
	}
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
