package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"virtual-museum/internal/geom"
	"virtual-museum/internal/hotspot"
)

var (
	navMarkerColor = rl.NewColor(80, 200, 255, 90)
	kindColors     = [...]rl.Color{
		hotspot.Navigation: rl.NewColor(80, 200, 255, 200),
		hotspot.Exhibit:    rl.NewColor(255, 80, 80, 200),
		hotspot.Picture:    rl.NewColor(80, 80, 255, 200),
	}
)

// drawProxies draws navigation floor markers always and every pick shape when debugging.
func (s *Scene) drawProxies() {
	for _, id := range s.order {
		p := s.proxies[id]
		if p.Kind == hotspot.Navigation {
			for _, c := range p.Children {
				if b, ok := c.Shape.(geom.Box); ok {
					rl.DrawCubeV(vec3(b.Center()), vec3(b.Size()), navMarkerColor)
				}
			}
		}
		if !s.ShowHotspots {
			continue
		}
		col := kindColors[p.Kind]
		for _, n := range p.Nodes() {
			drawShape(n.Shape, col)
		}
	}
}

func drawShape(sh geom.Shape, col rl.Color) {
	switch v := sh.(type) {
	case geom.Sphere:
		rl.DrawSphereWires(vec3(v.C), v.Radius, 8, 12, col)
	case geom.Box:
		rl.DrawCubeWiresV(vec3(v.Center()), vec3(v.Size()), col)
	}
}
