// Package input normalizes keyboard, mouse and touch activity into movement
// intents and pointer-lock status, independent of the device that produced them.
package input

// Direction is one of the six movement intents.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
	numDirections
)

var directionNames = [numDirections]string{"forward", "backward", "left", "right", "up", "down"}

func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return "unknown"
	}
	return directionNames[d]
}

// Directions lists all directions in declaration order.
func Directions() []Direction {
	return []Direction{Forward, Backward, Left, Right, Up, Down}
}

// Intent is the set of active movement flags. The zero value has nothing active.
type Intent [numDirections]bool

// Active reports whether d is set.
func (in Intent) Active(d Direction) bool {
	if d < 0 || d >= numDirections {
		return false
	}
	return in[d]
}

// Any reports whether at least one direction is set.
func (in Intent) Any() bool {
	for _, v := range in {
		if v {
			return true
		}
	}
	return false
}

// State owns the current intents and the pointer-lock flag.
// It is mutated by device handlers and read once per frame by the camera rig.
type State struct {
	intent Intent
	locked bool
}

// SetIntent sets or clears one direction. Repeated sets are idempotent.
func (s *State) SetIntent(d Direction, active bool) {
	if d < 0 || d >= numDirections {
		return
	}
	s.intent[d] = active
}

// Intent returns a copy of the current flags.
func (s *State) Intent() Intent {
	return s.intent
}

// Reset clears every direction.
func (s *State) Reset() {
	s.intent = Intent{}
}

// SetPointerLocked records a lock-change notification from the platform.
func (s *State) SetPointerLocked(locked bool) {
	s.locked = locked
}

// IsPointerLocked reports whether raw mouse movement is captured for look control.
func (s *State) IsPointerLocked() bool {
	return s.locked
}
