package input

// Keymap maps platform key codes to directions.
type Keymap map[int32]Direction

// DefaultKeymap binds W/S/A/D to horizontal movement and Q/E to up/down.
// Codes are uppercase ASCII, which is what raylib reports for letter keys.
func DefaultKeymap() Keymap {
	return Keymap{
		'W': Forward,
		'S': Backward,
		'A': Left,
		'D': Right,
		'Q': Up,
		'E': Down,
	}
}

// Apply forwards a key transition to s. It returns false for unbound keys.
func (k Keymap) Apply(s *State, key int32, down bool) bool {
	d, ok := k[key]
	if !ok {
		return false
	}
	s.SetIntent(d, down)
	return true
}
