package exhibit

import (
	"context"
	"fmt"

	"virtual-museum/internal/catalog"
)

// Session owns the live exhibit. All methods must be called from the frame
// goroutine; fetches report back through the Poster.
type Session struct {
	loader  Loader
	stage   Stage
	speaker Speaker
	display Display
	post    Poster
	log     Logger

	token uint64
	live  *live
}

// live is one opened exhibit. token identifies which Open it belongs to;
// completions carrying an older token are discarded.
type live struct {
	token   uint64
	exhibit catalog.Exhibit
	cancel  context.CancelFunc
	state   State

	model     Model
	clip      Clip
	modelDone bool
	audioDone bool
	grow      growth
}

// NewSession wires a session to its collaborators.
func NewSession(loader Loader, stage Stage, speaker Speaker, display Display, post Poster, log Logger) *Session {
	return &Session{
		loader:  loader,
		stage:   stage,
		speaker: speaker,
		display: display,
		post:    post,
		log:     log,
	}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	if s.live == nil {
		return Closed
	}
	return s.live.state
}

// Current returns the exhibit being loaded or displayed.
func (s *Session) Current() (catalog.Exhibit, bool) {
	if s.live == nil {
		return catalog.Exhibit{}, false
	}
	return s.live.exhibit, true
}

// Animating reports whether the displayed model is still growing in.
func (s *Session) Animating() bool {
	return s.live != nil && s.live.state == Displayed && s.live.grow.active
}

// Open tears down any current exhibit, shows the panel text immediately and
// starts fetching the model and the narration independently.
func (s *Session) Open(e catalog.Exhibit) {
	s.teardown()

	s.token++
	ctx, cancel := context.WithCancel(context.Background())
	l := &live{token: s.token, exhibit: e, cancel: cancel, state: Loading}
	s.live = l

	s.display.ShowExhibit(e.Title, e.Description)
	s.display.SetLoading(true)

	s.fetch(ctx, l, e.ModelURL, s.modelFetched)
	if e.AudioURL == "" {
		l.audioDone = true
	} else {
		s.fetch(ctx, l, e.AudioURL, s.audioFetched)
	}
}

func (s *Session) fetch(ctx context.Context, l *live, url string, done func(*live, string, error)) {
	go func() {
		path, err := s.loader.Fetch(ctx, url)
		s.post.Post(func() { done(l, path, err) })
	}()
}

// Close tears down the current exhibit and hides its panel. Closing with
// nothing open does nothing.
func (s *Session) Close() {
	if s.live == nil {
		return
	}
	s.teardown()
	s.display.SetLoading(false)
	s.display.HideExhibit()
}

// teardown releases everything the live exhibit holds.
func (s *Session) teardown() {
	l := s.live
	if l == nil {
		return
	}
	s.live = nil
	l.cancel()
	if l.model != nil {
		s.stage.Detach(l.model)
		l.model.Release()
		l.model = nil
	}
	if l.clip != nil {
		s.speaker.Stop()
		l.clip.Release()
		l.clip = nil
	}
	l.state = Closed
}

func (s *Session) current(l *live) bool {
	return s.live != nil && s.live.token == l.token
}

func (s *Session) modelFetched(l *live, path string, err error) {
	if !s.current(l) {
		return
	}
	var m Model
	if err == nil {
		m, err = s.loader.DecodeModel(path)
	}
	if err != nil {
		s.fail(fmt.Errorf("exhibit: model %s: %w", l.exhibit.ModelURL, err))
		s.teardown()
		s.display.SetLoading(false)
		s.display.HideExhibit()
		return
	}
	l.model = m
	l.modelDone = true
	l.state = Displayed
	l.grow = startGrowth()
	s.stage.Attach(m, s.placement(l))
	if l.clip != nil {
		s.speaker.Play(l.clip)
	}
	s.barrier(l)
}

func (s *Session) audioFetched(l *live, path string, err error) {
	if !s.current(l) {
		return
	}
	var c Clip
	if err == nil {
		c, err = s.loader.DecodeClip(path)
	}
	l.audioDone = true
	if err != nil {
		s.fail(fmt.Errorf("exhibit: audio %s: %w", l.exhibit.AudioURL, err))
		s.barrier(l)
		return
	}
	l.clip = c
	if l.state == Displayed {
		s.speaker.Play(c)
	}
	s.barrier(l)
}

// barrier clears the loading indicator once both slots have completed.
func (s *Session) barrier(l *live) {
	if l.modelDone && l.audioDone {
		s.display.SetLoading(false)
	}
}

func (s *Session) fail(err error) {
	if s.log != nil {
		s.log.Logf("%v", err)
	}
	s.display.Notify("Could not load " + s.live.exhibit.Title)
}

func (s *Session) placement(l *live) Placement {
	return Placement{
		Offset: l.exhibit.ModelOffset,
		Scale:  l.exhibit.ModelScale.Mul(float32(l.grow.pos)),
	}
}

// Step advances the grow-in animation by dt seconds.
func (s *Session) Step(dt float32) {
	l := s.live
	if l == nil || l.state != Displayed || !l.grow.active {
		return
	}
	l.grow.step(dt)
	s.stage.Place(l.model, s.placement(l))
}
