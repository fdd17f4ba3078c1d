// Package platform binds the tour controller to raylib: it polls devices, owns
// the pointer lock and the speaker, decodes assets on the main thread and runs
// the frame loop.
package platform

import rl "github.com/gen2brain/raylib-go/raylib"

// Locker is pointer lock on top of raylib's cursor capture. On touch form
// factors there is no cursor to capture and every call does nothing.
type Locker struct {
	supported bool
	locked    bool
}

// NewLocker returns an unlocked pointer lock.
func NewLocker(supported bool) *Locker {
	return &Locker{supported: supported}
}

func (l *Locker) Lock() {
	if !l.supported || l.locked {
		return
	}
	rl.DisableCursor()
	l.locked = true
}

func (l *Locker) Unlock() {
	if !l.locked {
		return
	}
	rl.EnableCursor()
	l.locked = false
}

func (l *Locker) Locked() bool { return l.locked }
