package ui

// Action is what a button asks for when clicked.
type Action int

const (
	NoAction Action = iota
	CloseExhibit
	CloseVideo
	WatchVideo
	ToggleInstructions
	CloseInstructions
	GoHome
	Fullscreen
)
