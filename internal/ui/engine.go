package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	defaultFontSize = 20
	lineSpacing     = 4
)

// Engine holds the current stylesheet and nodes, lays them out against the screen and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next); parents must come before children.
// Resolved styles are cached and only recomputed when sheet or nodes change to avoid per-frame allocations.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
	screenW      int32
	screenH      int32
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// SetFont sets the font used for all text. Zero texture ID = use raylib default.
func (e *Engine) SetFont(font rl.Font) {
	e.font = font
}

func (e *Engine) measure(text string, size int32) int32 {
	if e.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(e.font, text, float32(size), 1).X)
	}
	return rl.MeasureText(text, size)
}

// LoadCSS parses CSS source and replaces the current stylesheet.
func (e *Engine) LoadCSS(src string) error {
	sheet, err := ParseCSS(src)
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly.
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
	e.cacheValid = false
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// resolveProps returns merged properties for a node (class and id matched; last wins).
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		sel := rule.Selector
		matches := false
		switch sel[0] {
		case '.':
			matches = n.Class == sel[1:]
		case '#':
			matches = n.ID == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

func (e *Engine) styles() []ComputedStyle {
	if !e.cacheValid {
		e.cachedStyles = make([]ComputedStyle, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = ResolveProps(e.resolveProps(n))
		}
		e.cacheValid = true
	}
	return e.cachedStyles
}

// Layout resolves every node's bounds for a screen of w by h pixels. A node
// without a height grows to fit its wrapped text.
func (e *Engine) Layout(w, h int32) {
	e.screenW, e.screenH = w, h
	screen := rl.Rectangle{Width: float32(w), Height: float32(h)}
	for i, n := range e.nodes {
		style := e.styles()[i]
		box := screen
		if n.Parent != nil {
			box = n.Parent.Bounds
		}
		width := float32(style.Width)
		if style.WidthPct >= 0 {
			width = box.Width * float32(style.WidthPct) / 100
		}
		height := float32(style.Height)
		if style.HeightPct >= 0 {
			height = box.Height * float32(style.HeightPct) / 100
		}
		if height == 0 && n.Text != "" {
			lines := wrap(n.Text, style.FontSize, int32(width)-2*style.Padding, e.measure)
			height = float32(int32(len(lines))*(style.FontSize+lineSpacing) + 2*style.Padding)
		}

		x := box.X + float32(style.Left)
		switch {
		case style.Right >= 0:
			x = box.X + box.Width - width - float32(style.Right)
		case style.LeftPct >= 0:
			x = box.X + (box.Width-width)*float32(style.LeftPct)/100
		}
		y := box.Y + float32(style.Top)
		switch {
		case style.Bottom >= 0:
			y = box.Y + box.Height - height - float32(style.Bottom)
		case style.TopPct >= 0:
			y = box.Y + (box.Height-height)*float32(style.TopPct)/100
		}
		n.Bounds = rl.Rectangle{X: x, Y: y, Width: width, Height: height}
	}
}

// HitTest returns the topmost visible node under the screen point.
func (e *Engine) HitTest(x, y float32) (*Node, bool) {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		if n := e.nodes[i]; n.Contains(x, y) {
			return n, true
		}
	}
	return nil, false
}

// ActionAt returns the action of the topmost node under the point, and whether any UI is there at all.
func (e *Engine) ActionAt(x, y float32) (Action, bool) {
	n, ok := e.HitTest(x, y)
	if !ok {
		return NoAction, false
	}
	return n.Action, true
}

// Draw lays out against the current screen size, then draws background, border and text per visible node.
func (e *Engine) Draw() {
	e.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	for i, n := range e.nodes {
		if !n.Visible() {
			continue
		}
		style := e.cachedStyles[i]
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)

		if style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, style.Background)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}
		if n.Text == "" {
			continue
		}
		pad := style.Padding
		ty := y + pad
		for _, line := range wrap(n.Text, style.FontSize, w-2*pad, e.measure) {
			tx := x + pad
			if style.Center {
				tx = x + (w-e.measure(line, style.FontSize))/2
			}
			if e.font.Texture.ID != 0 {
				rl.DrawTextEx(e.font, line, rl.NewVector2(float32(tx), float32(ty)), float32(style.FontSize), 1, style.Color)
			} else {
				rl.DrawText(line, tx, ty, style.FontSize, style.Color)
			}
			ty += style.FontSize + lineSpacing
		}
	}
}

// wrap splits text into lines no wider than maxW pixels. Explicit newlines are kept.
// A maxW of zero or less disables wrapping.
func wrap(text string, size, maxW int32, measure func(string, int32) int32) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if maxW <= 0 {
			out = append(out, para)
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			next := word
			if line != "" {
				next = line + " " + word
			}
			if line != "" && measure(next, size) > maxW {
				out = append(out, line)
				line = word
				continue
			}
			line = next
		}
		out = append(out, line)
	}
	return out
}

// HasStylesheet returns whether a stylesheet has been loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}
