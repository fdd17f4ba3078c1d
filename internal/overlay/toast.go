package overlay

// ToastDuration is how long a notice stays on screen, in seconds.
const ToastDuration = 3

type toast struct {
	text string
	left float32
}

// Notify shows a short non-modal notice, such as an asset load failure.
func (c *Controller) Notify(text string) {
	c.toasts = append(c.toasts, toast{text: text, left: ToastDuration})
}

// Notices returns the visible notices, oldest first.
func (c *Controller) Notices() []string {
	out := make([]string, len(c.toasts))
	for i, t := range c.toasts {
		out[i] = t.text
	}
	return out
}

// Step ages notices by dt seconds and drops expired ones.
func (c *Controller) Step(dt float32) {
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		t.left -= dt
		if t.left > 0 {
			kept = append(kept, t)
		}
	}
	c.toasts = kept
}
