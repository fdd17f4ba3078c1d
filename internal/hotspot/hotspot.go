// Package hotspot keeps the interactive world-space targets of the tour and
// the mapping from render proxies back to the record that owns them.
package hotspot

import (
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/catalog"
	"virtual-museum/internal/geom"
)

// Kind tags a record's payload. The order is also picking priority.
type Kind int

const (
	Navigation Kind = iota
	Exhibit
	Picture
)

func (k Kind) String() string {
	switch k {
	case Navigation:
		return "navigation"
	case Exhibit:
		return "exhibit"
	case Picture:
		return "picture"
	}
	return "unknown"
}

// Kinds lists every kind in priority order.
func Kinds() []Kind {
	return []Kind{Navigation, Exhibit, Picture}
}

// Proxy sizes, in world units.
const (
	DefaultNavigationRadius = 8
	ExhibitRadius           = 13
	markerThickness         = 0.5
)

// PictureSize is the extent of the box placed over a framed picture.
var PictureSize = mgl32.Vec3{50, 50, 5}

// ProxyID identifies a render node. Zero is never assigned.
type ProxyID uint32

// Node is one pickable render node of a proxy.
type Node struct {
	ID    ProxyID
	Shape geom.Shape
}

// Proxy is the render object created for one hotspot. Children are extra
// nodes (such as a navigation floor marker) that resolve to the same record.
type Proxy struct {
	Node
	Kind     Kind
	Children []Node
}

// Nodes returns the root node followed by its children.
func (p Proxy) Nodes() []Node {
	return append([]Node{p.Node}, p.Children...)
}

// Record is a registered hotspot. Its anchor and payload never change after creation.
type Record struct {
	kind    Kind
	index   int
	anchor  mgl32.Vec3
	proxy   ProxyID
	payload any
}

func (r *Record) Kind() Kind { return r.kind }

// Index is the record's position in the catalog list it came from.
func (r *Record) Index() int { return r.index }

func (r *Record) Anchor() mgl32.Vec3 { return r.anchor }

func (r *Record) Proxy() ProxyID { return r.proxy }

// Navigation returns the payload of a navigation record.
func (r *Record) Navigation() (catalog.Navigation, bool) {
	n, ok := r.payload.(catalog.Navigation)
	return n, ok
}

// Exhibit returns the payload of an exhibit record.
func (r *Record) Exhibit() (catalog.Exhibit, bool) {
	e, ok := r.payload.(catalog.Exhibit)
	return e, ok
}

// Picture returns the payload of a picture record.
func (r *Record) Picture() (catalog.Picture, bool) {
	p, ok := r.payload.(catalog.Picture)
	return p, ok
}
