package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	TargetFPS  int32
	Fullscreen bool
}

// Run opens the window and runs the main loop. setup runs once the GL context exists; an error
// from it closes the window and is returned. Each frame Run calls update with the frame time in
// seconds, then clears the screen and calls draw. teardown runs before the window closes, while
// GPU resources can still be freed.
// Esc releases the cursor rather than quitting; close via the window button.
func Run(w Window, setup func() error, update func(dt float32), draw func(), teardown func()) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()
	if teardown != nil {
		defer teardown()
	}

	rl.SetExitKey(rl.KeyNull)
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(w.TargetFPS)
	}
	if setup != nil {
		if err := setup(); err != nil {
			return err
		}
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	return nil
}
