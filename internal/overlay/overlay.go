// Package overlay tracks which modal panel is open and owns the pointer-lock
// hand-off between the world and the panels.
package overlay

import "fmt"

// Modal is the panel currently claiming focus.
type Modal int

const (
	None Modal = iota
	ExhibitPanel
	VideoPanel
	InstructionsPanel
)

func (m Modal) String() string {
	switch m {
	case None:
		return "none"
	case ExhibitPanel:
		return "exhibit"
	case VideoPanel:
		return "video"
	case InstructionsPanel:
		return "instructions"
	}
	return "unknown"
}

// Locker is the platform pointer lock.
type Locker interface {
	Lock()
	Unlock()
	Locked() bool
}

// ExhibitView is the text of the exhibit panel.
type ExhibitView struct {
	Title       string
	Description string
}

// VideoView is the single video container. It is created on first use and reused.
type VideoView struct {
	ID          string
	Title       string
	Description string
}

// EmbedURL is the player address for the current video.
func (v *VideoView) EmbedURL() string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&rel=0&modestbranding=1", v.ID)
}

// Controller enforces that at most one modal is open at a time.
type Controller struct {
	locker  Locker
	desktop bool

	modal   Modal
	exhibit ExhibitView
	video   *VideoView
	loading bool
	onClose map[Modal]func()
	toasts  []toast
}

// New returns a controller with nothing open. On desktop, closing the last
// modal re-acquires pointer lock.
func New(locker Locker, desktop bool) *Controller {
	return &Controller{locker: locker, desktop: desktop, onClose: make(map[Modal]func())}
}

// Current returns the open modal, or None.
func (c *Controller) Current() Modal { return c.modal }

// IsOpen reports whether any modal is open.
func (c *Controller) IsOpen() bool { return c.modal != None }

// OnClose registers fn to run whenever m closes, whether by Close or by
// being replaced with another modal.
func (c *Controller) OnClose(m Modal, fn func()) {
	c.onClose[m] = fn
}

func (c *Controller) open(m Modal) {
	if c.modal != None && c.modal != m {
		c.dismiss()
	}
	c.modal = m
	if c.desktop && c.locker.Locked() {
		c.locker.Unlock()
	}
}

// dismiss closes the current modal without touching pointer lock.
func (c *Controller) dismiss() {
	m := c.modal
	c.modal = None
	if m == ExhibitPanel {
		c.loading = false
	}
	if fn := c.onClose[m]; fn != nil {
		fn()
	}
}

// OpenExhibit shows the exhibit panel with the given text.
func (c *Controller) OpenExhibit(title, description string) {
	c.open(ExhibitPanel)
	c.exhibit = ExhibitView{Title: title, Description: description}
}

// Exhibit returns the exhibit panel text.
func (c *Controller) Exhibit() ExhibitView { return c.exhibit }

// OpenVideo points the video container at id and shows it.
func (c *Controller) OpenVideo(id, title, description string) *VideoView {
	c.open(VideoPanel)
	if c.video == nil {
		c.video = &VideoView{}
	}
	c.video.ID = id
	c.video.Title = title
	c.video.Description = description
	return c.video
}

// Video returns the video container, or nil if no video was ever opened.
func (c *Controller) Video() *VideoView { return c.video }

// OpenInstructions shows the navigation help.
func (c *Controller) OpenInstructions() {
	c.open(InstructionsPanel)
}

// Close closes m if it is the open modal and reports whether it did.
// On desktop, pointer lock is restored once nothing is open.
func (c *Controller) Close(m Modal) bool {
	if m == None || c.modal != m {
		return false
	}
	c.dismiss()
	c.relock()
	return true
}

func (c *Controller) relock() {
	if c.desktop && c.modal == None && !c.locker.Locked() {
		c.locker.Lock()
	}
}

// RequestLock handles the user clicking back into the world. An open exhibit
// panel is closed first; any other modal refuses the lock.
func (c *Controller) RequestLock() bool {
	switch c.modal {
	case None:
		if !c.locker.Locked() {
			c.locker.Lock()
		}
		return true
	case ExhibitPanel:
		return c.Close(ExhibitPanel)
	}
	return false
}

// LockChanged reacts to a platform lock notification. A lock taken while a
// modal is open is released again. It returns the resulting lock state.
func (c *Controller) LockChanged(locked bool) bool {
	if locked && c.IsOpen() {
		c.locker.Unlock()
		return false
	}
	return locked
}

// SetLoading shows or hides the exhibit loading indicator.
func (c *Controller) SetLoading(on bool) { c.loading = on }

// Loading reports whether the loading indicator is visible.
func (c *Controller) Loading() bool { return c.loading }

// ShowExhibit and HideExhibit let the exhibit session drive the panel.
func (c *Controller) ShowExhibit(title, description string) { c.OpenExhibit(title, description) }

func (c *Controller) HideExhibit() { c.Close(ExhibitPanel) }
