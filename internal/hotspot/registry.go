package hotspot

import (
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/catalog"
	"virtual-museum/internal/geom"
)

// Sink is the scene side of the registry. It owns the proxies it is given
// until they are detached on the next rebuild.
type Sink interface {
	AttachProxy(p Proxy)
	DetachProxy(id ProxyID)
}

// Registry holds the three hotspot collections. It does no picking itself.
type Registry struct {
	sink    Sink
	next    ProxyID
	records [3][]*Record
	proxies [3][]Proxy
	owners  map[ProxyID]*Record
}

// NewRegistry returns an empty registry that inserts proxies into sink.
func NewRegistry(sink Sink) *Registry {
	return &Registry{sink: sink, owners: make(map[ProxyID]*Record)}
}

// Rebuild detaches every existing proxy and registers one record and one proxy
// per entry, in list order.
func (r *Registry) Rebuild(nav []catalog.Navigation, exhibits []catalog.Exhibit, pictures []catalog.Picture) {
	for _, k := range Kinds() {
		for _, p := range r.proxies[k] {
			r.sink.DetachProxy(p.ID)
		}
		r.records[k] = nil
		r.proxies[k] = nil
	}
	r.owners = make(map[ProxyID]*Record)

	for i, n := range nav {
		radius := n.Radius
		if radius == 0 {
			radius = DefaultNavigationRadius
		}
		marker := geom.BoxAt(
			n.Anchor.Sub(mgl32.Vec3{0, radius, 0}),
			mgl32.Vec3{2 * radius, markerThickness, 2 * radius},
		)
		r.add(Navigation, i, n.Anchor, n, geom.Sphere{C: n.Anchor, Radius: radius}, marker)
	}
	for i, e := range exhibits {
		r.add(Exhibit, i, e.Anchor, e, geom.Sphere{C: e.Anchor, Radius: ExhibitRadius})
	}
	for i, p := range pictures {
		r.add(Picture, i, p.Anchor, p, geom.BoxAt(p.Anchor, PictureSize))
	}
}

func (r *Registry) add(kind Kind, index int, anchor mgl32.Vec3, payload any, shape geom.Shape, children ...geom.Shape) {
	rec := &Record{kind: kind, index: index, anchor: anchor, payload: payload}
	p := Proxy{Kind: kind, Node: Node{ID: r.id(), Shape: shape}}
	for _, c := range children {
		p.Children = append(p.Children, Node{ID: r.id(), Shape: c})
	}
	rec.proxy = p.ID
	for _, n := range p.Nodes() {
		r.owners[n.ID] = rec
	}
	r.records[kind] = append(r.records[kind], rec)
	r.proxies[kind] = append(r.proxies[kind], p)
	r.sink.AttachProxy(p)
}

func (r *Registry) id() ProxyID {
	r.next++
	return r.next
}

// Owner resolves any proxy node, root or child, to the record that owns it.
func (r *Registry) Owner(id ProxyID) (*Record, bool) {
	rec, ok := r.owners[id]
	return rec, ok
}

// Records returns the records of one kind in catalog order.
func (r *Registry) Records(k Kind) []*Record {
	if k < 0 || int(k) >= len(r.records) {
		return nil
	}
	return r.records[k]
}

// Proxies returns the proxies of one kind in catalog order.
func (r *Registry) Proxies(k Kind) []Proxy {
	if k < 0 || int(k) >= len(r.proxies) {
		return nil
	}
	return r.proxies[k]
}

// Len is the total number of records.
func (r *Registry) Len() int {
	n := 0
	for _, recs := range r.records {
		n += len(recs)
	}
	return n
}
