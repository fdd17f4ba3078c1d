package exhibit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-museum/internal/catalog"
	"virtual-museum/internal/events"
)

type fakeModel struct {
	name     string
	released int
}

func (m *fakeModel) Release() { m.released++ }

type fakeClip struct {
	name     string
	released int
}

func (c *fakeClip) Release() { c.released++ }

// fakeLoader resolves urls to themselves. Urls listed in gates block until
// their channel is closed; urls in fail return an error.
type fakeLoader struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	fail    map[string]bool
	models  []*fakeModel
	clips   []*fakeClip
	decoded []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{gates: make(map[string]chan struct{}), fail: make(map[string]bool)}
}

func (l *fakeLoader) gate(url string) chan struct{} {
	ch := make(chan struct{})
	l.mu.Lock()
	l.gates[url] = ch
	l.mu.Unlock()
	return ch
}

func (l *fakeLoader) Fetch(ctx context.Context, url string) (string, error) {
	l.mu.Lock()
	ch := l.gates[url]
	failed := l.fail[url]
	l.mu.Unlock()
	if ch != nil {
		<-ch
	}
	if failed {
		return "", errors.New("404")
	}
	return url, nil
}

func (l *fakeLoader) DecodeModel(path string) (Model, error) {
	m := &fakeModel{name: path}
	l.models = append(l.models, m)
	l.decoded = append(l.decoded, path)
	return m, nil
}

func (l *fakeLoader) DecodeClip(path string) (Clip, error) {
	c := &fakeClip{name: path}
	l.clips = append(l.clips, c)
	l.decoded = append(l.decoded, path)
	return c, nil
}

type fakeStage struct {
	log      []string
	attached map[Model]Placement
}

func newFakeStage() *fakeStage { return &fakeStage{attached: make(map[Model]Placement)} }

func (s *fakeStage) Attach(m Model, p Placement) {
	s.log = append(s.log, "attach "+m.(*fakeModel).name)
	s.attached[m] = p
}

func (s *fakeStage) Place(m Model, p Placement) { s.attached[m] = p }

func (s *fakeStage) Detach(m Model) {
	s.log = append(s.log, "detach "+m.(*fakeModel).name)
	delete(s.attached, m)
}

type fakeSpeaker struct {
	playing Clip
	plays   int
	stops   int
}

func (s *fakeSpeaker) Play(c Clip) {
	s.playing = c
	s.plays++
}

func (s *fakeSpeaker) Stop() {
	s.playing = nil
	s.stops++
}

type fakeDisplay struct {
	title   string
	desc    string
	shown   bool
	loading bool
	notices []string
}

func (d *fakeDisplay) ShowExhibit(title, description string) {
	d.title, d.desc, d.shown = title, description, true
}

func (d *fakeDisplay) HideExhibit()       { d.shown = false }
func (d *fakeDisplay) SetLoading(on bool) { d.loading = on }
func (d *fakeDisplay) Notify(text string) { d.notices = append(d.notices, text) }

type fakeLog struct{ lines []string }

func (l *fakeLog) Logf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

type harness struct {
	q       *events.Queue
	loader  *fakeLoader
	stage   *fakeStage
	speaker *fakeSpeaker
	display *fakeDisplay
	log     *fakeLog
	s       *Session
}

func newHarness() *harness {
	h := &harness{
		q:       &events.Queue{},
		loader:  newFakeLoader(),
		stage:   newFakeStage(),
		speaker: &fakeSpeaker{},
		display: &fakeDisplay{},
		log:     &fakeLog{},
	}
	h.s = NewSession(h.loader, h.stage, h.speaker, h.display, h.q, h.log)
	return h
}

// drainUntil pumps the queue on the test goroutine, like the frame loop does.
func (h *harness) drainUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		h.q.Drain()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

// settle gives released fetch goroutines time to post, then drains.
func settle(h *harness) {
	for i := 0; i < 20; i++ {
		time.Sleep(time.Millisecond)
		h.q.Drain()
	}
}

func exhibitE1() catalog.Exhibit {
	return catalog.Exhibit{
		Anchor:      mgl32.Vec3{0, 0, 0},
		ModelOffset: mgl32.Vec3{-150, 30, -118},
		ModelScale:  mgl32.Vec3{10, 10, 10},
		ModelURL:    "A.glb",
		AudioURL:    "A.mp3",
		Title:       "E1",
		Description: "first exhibit",
	}
}

func TestOpenDisplayClose(t *testing.T) {
	t.Parallel()

	h := newHarness()
	gate := h.loader.gate("A.glb")

	h.s.Open(exhibitE1())
	assert.Equal(t, Loading, h.s.State())
	assert.True(t, h.display.shown)
	assert.Equal(t, "E1", h.display.title)
	assert.True(t, h.display.loading)

	close(gate)
	h.drainUntil(t, func() bool { return h.s.State() == Displayed && !h.display.loading })

	require.Len(t, h.loader.models, 1)
	model := h.loader.models[0]
	p, ok := h.stage.attached[model]
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-150, 30, -118}, p.Offset)
	assert.Equal(t, mgl32.Vec3{}, p.Scale, "model grows in from zero")
	require.NotNil(t, h.speaker.playing)

	h.s.Close()
	assert.Equal(t, Closed, h.s.State())
	assert.Empty(t, h.stage.attached)
	assert.Equal(t, 1, model.released)
	assert.Nil(t, h.speaker.playing)
	assert.Equal(t, 1, h.loader.clips[0].released)
	assert.False(t, h.display.shown)
	assert.False(t, h.display.loading)
}

func TestLoadingClearsOnlyAfterBothSlots(t *testing.T) {
	t.Parallel()

	h := newHarness()
	audio := h.loader.gate("A.mp3")

	h.s.Open(exhibitE1())
	h.drainUntil(t, func() bool { return h.s.State() == Displayed })
	assert.True(t, h.display.loading)
	assert.Zero(t, h.speaker.plays)

	close(audio)
	h.drainUntil(t, func() bool { return !h.display.loading })
	assert.Equal(t, 1, h.speaker.plays)
}

func TestAudioBeforeModelPlaysOnDisplay(t *testing.T) {
	t.Parallel()

	h := newHarness()
	model := h.loader.gate("A.glb")

	h.s.Open(exhibitE1())
	h.drainUntil(t, func() bool { return len(h.loader.clips) == 1 })
	assert.Zero(t, h.speaker.plays)
	assert.True(t, h.display.loading)

	close(model)
	h.drainUntil(t, func() bool { return h.s.State() == Displayed })
	assert.Equal(t, 1, h.speaker.plays)
	assert.False(t, h.display.loading)
}

func TestAudioFailureStillClearsLoading(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.loader.fail["A.mp3"] = true

	h.s.Open(exhibitE1())
	h.drainUntil(t, func() bool { return h.s.State() == Displayed && !h.display.loading })
	assert.Zero(t, h.speaker.plays)
	require.Len(t, h.log.lines, 1)
	assert.Contains(t, h.log.lines[0], "A.mp3")
	assert.Equal(t, []string{"Could not load E1"}, h.display.notices)
}

func TestModelFailureReturnsToClosed(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.loader.fail["A.glb"] = true
	audio := h.loader.gate("A.mp3")

	h.s.Open(exhibitE1())
	h.drainUntil(t, func() bool { return h.s.State() == Closed })
	assert.False(t, h.display.loading)
	assert.False(t, h.display.shown)
	assert.Contains(t, h.log.lines[0], "exhibit: model A.glb")

	// A late audio completion belongs to a dead session.
	close(audio)
	settle(h)
	assert.Empty(t, h.loader.clips)
}

func TestSecondOpenReleasesFirstBeforeAttaching(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.s.Open(exhibitE1())
	h.drainUntil(t, func() bool { return h.s.State() == Displayed && !h.display.loading })

	e2 := exhibitE1()
	e2.Title, e2.ModelURL, e2.AudioURL = "E2", "B.glb", "B.mp3"
	h.s.Open(e2)
	h.drainUntil(t, func() bool { return h.s.State() == Displayed && !h.display.loading })

	assert.Equal(t, []string{"attach A.glb", "detach A.glb", "attach B.glb"}, h.stage.log)
	assert.Equal(t, 1, h.loader.models[0].released)
	assert.Zero(t, h.loader.models[1].released)
	assert.Equal(t, 1, h.loader.clips[0].released)
	assert.Equal(t, 1, h.speaker.stops)
	assert.Len(t, h.stage.attached, 1)
	assert.Equal(t, "E2", h.display.title)
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	t.Parallel()

	h := newHarness()
	slow := h.loader.gate("A.glb")

	h.s.Open(exhibitE1())
	e2 := exhibitE1()
	e2.Title, e2.ModelURL, e2.AudioURL = "E2", "B.glb", ""
	h.s.Open(e2)
	h.drainUntil(t, func() bool { return h.s.State() == Displayed })

	close(slow)
	settle(h)

	assert.NotContains(t, h.loader.decoded, "A.glb")
	cur, ok := h.s.Current()
	require.True(t, ok)
	assert.Equal(t, "E2", cur.Title)
	assert.Equal(t, []string{"attach B.glb"}, h.stage.log)
}

func TestCloseWithNothingOpen(t *testing.T) {
	t.Parallel()

	h := newHarness()
	assert.NotPanics(t, h.s.Close)
	assert.Equal(t, Closed, h.s.State())
	assert.Zero(t, h.speaker.stops)
}

func TestGrowInReachesConfiguredScale(t *testing.T) {
	t.Parallel()

	h := newHarness()
	e := exhibitE1()
	e.AudioURL = ""
	h.s.Open(e)
	h.drainUntil(t, func() bool { return h.s.State() == Displayed })
	require.True(t, h.s.Animating())

	for i := 0; i < 600 && h.s.Animating(); i++ {
		h.s.Step(1.0 / 60)
	}
	assert.False(t, h.s.Animating())
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, h.stage.attached[h.loader.models[0]].Scale)
}
