// Package exhibit manages the currently displayed artifact: at most one model
// and one narration are live, and every teardown releases both.
package exhibit

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
)

// State is the session lifecycle: Closed -> Loading -> Displayed -> Closed.
type State int

const (
	Closed State = iota
	Loading
	Displayed
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Loading:
		return "loading"
	case Displayed:
		return "displayed"
	}
	return "unknown"
}

// Model is a decoded scene node. Release frees its geometry, materials and textures.
type Model interface {
	Release()
}

// Clip is a decoded audio buffer.
type Clip interface {
	Release()
}

// Placement positions an attached model.
type Placement struct {
	Offset mgl32.Vec3
	Scale  mgl32.Vec3
}

// Stage is the part of the scene that shows exhibit models.
type Stage interface {
	Attach(m Model, p Placement)
	Place(m Model, p Placement)
	Detach(m Model)
}

// Speaker is the single reusable audio handle.
type Speaker interface {
	// Play stops whatever is playing and starts c.
	Play(c Clip)
	// Stop stops playback and disconnects the current clip.
	Stop()
}

// Loader resolves assets in two phases. Fetch may block and runs on a worker
// goroutine; the Decode methods run on the frame goroutine because they
// create GPU and audio-device resources.
type Loader interface {
	Fetch(ctx context.Context, url string) (string, error)
	DecodeModel(path string) (Model, error)
	DecodeClip(path string) (Clip, error)
}

// Display is the exhibit panel and its loading indicator.
type Display interface {
	ShowExhibit(title, description string)
	HideExhibit()
	SetLoading(on bool)
	Notify(text string)
}

// Poster hands a completion to the frame goroutine.
type Poster interface {
	Post(fn func())
}

// Logger receives load failures.
type Logger interface {
	Logf(format string, args ...any)
}
