package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocker struct {
	locked bool
	locks  int
}

func (l *fakeLocker) Lock() {
	l.locked = true
	l.locks++
}

func (l *fakeLocker) Unlock() { l.locked = false }

func (l *fakeLocker) Locked() bool { return l.locked }

func TestOpenReleasesAndCloseRestoresLock(t *testing.T) {
	t.Parallel()

	l := &fakeLocker{locked: true}
	c := New(l, true)

	c.OpenExhibit("E1", "first")
	assert.Equal(t, ExhibitPanel, c.Current())
	assert.False(t, l.locked)
	assert.Equal(t, ExhibitView{Title: "E1", Description: "first"}, c.Exhibit())

	assert.True(t, c.Close(ExhibitPanel))
	assert.Equal(t, None, c.Current())
	assert.True(t, l.locked)
}

func TestTouchNeverLocks(t *testing.T) {
	t.Parallel()

	l := &fakeLocker{}
	c := New(l, false)
	c.OpenInstructions()
	c.Close(InstructionsPanel)
	assert.Zero(t, l.locks)
}

func TestStrictMutualExclusion(t *testing.T) {
	t.Parallel()

	l := &fakeLocker{}
	c := New(l, true)
	closed := 0
	c.OnClose(ExhibitPanel, func() { closed++ })

	c.OpenExhibit("E1", "")
	c.SetLoading(true)
	c.OpenVideo("abc", "V", "")

	assert.Equal(t, VideoPanel, c.Current())
	assert.Equal(t, 1, closed)
	assert.False(t, c.Loading())
	assert.Zero(t, l.locks, "switching modals must not flash the lock")
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	c := New(&fakeLocker{}, true)
	assert.False(t, c.Close(ExhibitPanel))
	assert.False(t, c.Close(None))

	c.OpenInstructions()
	assert.False(t, c.Close(VideoPanel))
	assert.Equal(t, InstructionsPanel, c.Current())
}

func TestVideoContainerIsReused(t *testing.T) {
	t.Parallel()

	c := New(&fakeLocker{}, true)
	assert.Nil(t, c.Video())

	first := c.OpenVideo("A9P7MDe9xfQ", "Sembagare", "Sembagare")
	c.Close(VideoPanel)
	second := c.OpenVideo("2YNjtXqCO_Q", "Paskazia", "Paskazia")

	require.Same(t, first, second)
	assert.Equal(t, "2YNjtXqCO_Q", second.ID)
	assert.Equal(t, "https://www.youtube.com/embed/2YNjtXqCO_Q?autoplay=1&rel=0&modestbranding=1", second.EmbedURL())
}

func TestRequestLock(t *testing.T) {
	t.Parallel()

	l := &fakeLocker{}
	c := New(l, true)
	closed := false
	c.OnClose(ExhibitPanel, func() { closed = true })

	c.OpenVideo("v", "", "")
	assert.False(t, c.RequestLock())
	assert.False(t, l.locked)

	c.OpenExhibit("E", "")
	assert.True(t, c.RequestLock())
	assert.True(t, closed)
	assert.True(t, l.locked)
	assert.Equal(t, None, c.Current())

	l.locked = false
	assert.True(t, c.RequestLock())
	assert.True(t, l.locked)
}

func TestLockChangedWhileOpenIsReleased(t *testing.T) {
	t.Parallel()

	l := &fakeLocker{locked: true}
	c := New(l, true)
	c.OpenInstructions()

	l.locked = true
	assert.False(t, c.LockChanged(true))
	assert.False(t, l.locked)

	c.Close(InstructionsPanel)
	assert.True(t, c.LockChanged(true))
}

func TestToastsExpire(t *testing.T) {
	t.Parallel()

	c := New(&fakeLocker{}, true)
	c.Notify("first")
	c.Step(2)
	c.Notify("second")
	assert.Equal(t, []string{"first", "second"}, c.Notices())

	c.Step(1.5)
	assert.Equal(t, []string{"second"}, c.Notices())

	c.Step(2)
	assert.Empty(t, c.Notices())
}
