package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, button. It has optional class and id for CSS matching,
// bounds (resolved every layout), and optional text. Buttons carry an Action that is reported
// when the node is clicked.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // e.g. "exhibit-panel" for .exhibit-panel
	ID     string // e.g. "close-exhibit" for #close-exhibit
	Bounds rl.Rectangle
	Text   string
	Action Action
	Hidden bool
	// Parent, when set, positions this node relative to the parent's bounds and hides it with the parent.
	Parent *Node
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}

// NewButton creates a clickable node reporting a.
func NewButton(class, id, text string, a Action) *Node {
	n := NewNode("button", class, id, text)
	n.Action = a
	return n
}

// Visible reports whether the node and all its ancestors are shown.
func (n *Node) Visible() bool {
	for p := n; p != nil; p = p.Parent {
		if p.Hidden {
			return false
		}
	}
	return true
}

// Contains reports whether the screen point lies inside the node's last laid-out bounds.
func (n *Node) Contains(x, y float32) bool {
	b := n.Bounds
	return n.Visible() && b.Width > 0 && b.Height > 0 &&
		x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
