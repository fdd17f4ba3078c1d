package ui

import (
	_ "embed"
	"fmt"
	"strings"

	"virtual-museum/internal/overlay"
)

//go:embed tour.css
var tourCSS string

const (
	desktopHelp = `Welcome to the virtual museum! Here's how to navigate:

W / S: move forward / backward
A / D: move left / right
Q / E: move up / down
Mouse: look around
Esc: return the cursor
Click on the artifacts and pictures to reveal details`

	touchHelp = `Welcome to the virtual museum! Here's how to navigate:

Drag the pad at the bottom of the screen to walk.
Tap the artifacts and pictures to reveal details.`
)

// View is what the panels show this frame.
type View struct {
	Modal    overlay.Modal
	Exhibit  overlay.ExhibitView
	Video    *overlay.VideoView
	Loading  bool
	Notices  []string
	Touch    bool
	Locked   bool
	Loaded   bool
	Progress float32 // 0..1 while the museum loads
}

// Panels owns the tour's nodes and keeps their text and visibility in sync with a View.
type Panels struct {
	nodes []*Node

	loading      *Node
	loadingLabel *Node
	crosshair    *Node
	fullscreen   *Node

	exhibit      *Node
	exhibitTitle *Node
	exhibitDesc  *Node
	exhibitLoad  *Node

	video      *Node
	videoTitle *Node
	videoDesc  *Node
	videoURL   *Node

	instructions *Node
	helpText     *Node

	toast *Node
}

// NewPanels builds every panel and loads the embedded stylesheet into e.
func NewPanels(e *Engine) (*Panels, error) {
	if err := e.LoadCSS(tourCSS); err != nil {
		return nil, err
	}
	p := &Panels{}
	add := func(n *Node, parent *Node) *Node {
		n.Parent = parent
		p.nodes = append(p.nodes, n)
		return n
	}

	add(NewButton("hud-button", "instructions-button", "How to Navigate", ToggleInstructions), nil)
	add(NewButton("hud-button", "home-button", "Home", GoHome), nil)
	p.fullscreen = add(NewButton("hud-button", "fullscreen-button", "Fullscreen", Fullscreen), nil)
	p.crosshair = add(NewNode("panel", "crosshair", "", ""), nil)

	p.exhibit = add(NewNode("panel", "exhibit-panel", "exhibit-ui", ""), nil)
	p.exhibitTitle = add(NewNode("label", "exhibit-title", "", ""), p.exhibit)
	p.exhibitDesc = add(NewNode("label", "exhibit-description", "", ""), p.exhibit)
	p.exhibitLoad = add(NewNode("label", "exhibit-loader", "", "Loading model..."), p.exhibit)
	add(NewButton("close-button", "close-exhibit", "Close", CloseExhibit), p.exhibit)

	p.video = add(NewNode("panel", "video-panel", "video-container", ""), nil)
	p.videoTitle = add(NewNode("label", "video-title", "", ""), p.video)
	p.videoDesc = add(NewNode("label", "video-description", "", ""), p.video)
	add(NewButton("", "watch-button", "Watch video", WatchVideo), p.video)
	p.videoURL = add(NewNode("label", "video-url", "", ""), p.video)
	add(NewButton("close-button", "close-video", "Close", CloseVideo), p.video)

	p.instructions = add(NewNode("panel", "instructions-panel", "instruction-content", ""), nil)
	p.helpText = add(NewNode("label", "instructions-text", "", desktopHelp), p.instructions)
	add(NewButton("", "got-it", "Got it!", CloseInstructions), p.instructions)

	p.toast = add(NewNode("label", "toast", "", ""), nil)

	// The loading screen covers everything, so it goes last.
	p.loading = add(NewNode("panel", "loading-screen", "", ""), nil)
	p.loadingLabel = add(NewNode("label", "loading-label", "", ""), p.loading)

	e.SetNodes(p.nodes)
	return p, nil
}

// Sync updates text and visibility from v.
func (p *Panels) Sync(v View) {
	p.loading.Hidden = v.Loaded
	p.loadingLabel.Text = fmt.Sprintf("Loading museum... %d%%", int(v.Progress*100+0.5))
	p.fullscreen.Hidden = !v.Touch
	p.crosshair.Hidden = v.Touch || !v.Locked || v.Modal != overlay.None

	p.exhibit.Hidden = v.Modal != overlay.ExhibitPanel
	p.exhibitTitle.Text = v.Exhibit.Title
	p.exhibitDesc.Text = v.Exhibit.Description
	p.exhibitLoad.Hidden = !v.Loading

	p.video.Hidden = v.Modal != overlay.VideoPanel
	if v.Video != nil {
		p.videoTitle.Text = v.Video.Title
		p.videoDesc.Text = v.Video.Description
		p.videoURL.Text = v.Video.EmbedURL()
	}

	p.instructions.Hidden = v.Modal != overlay.InstructionsPanel
	p.helpText.Text = desktopHelp
	if v.Touch {
		p.helpText.Text = touchHelp
	}

	p.toast.Hidden = len(v.Notices) == 0
	p.toast.Text = strings.Join(v.Notices, "\n")
}
