package platform

import (
	"context"
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/assets"
	"virtual-museum/internal/catalog"
	"virtual-museum/internal/config"
	"virtual-museum/internal/debug"
	"virtual-museum/internal/fonts"
	"virtual-museum/internal/graphics"
	"virtual-museum/internal/input"
	"virtual-museum/internal/logger"
	"virtual-museum/internal/scene"
	"virtual-museum/internal/terminal"
	"virtual-museum/internal/tour"
	"virtual-museum/internal/ui"
)

const (
	windowTitle = "Virtual Museum"
	uiFontSize  = 32
)

// App is the running tour: one window, one controller, and the raylib pieces
// around it. Everything except asset fetching runs on the main thread.
type App struct {
	prefs   config.Prefs
	log     *logger.Logger
	cat     *catalog.Catalog
	desktop bool

	fetcher *assets.Fetcher
	locker  *Locker
	speaker *Speaker
	scene   *scene.Scene
	ctl     *tour.Controller
	ui      *ui.Engine
	panels  *ui.Panels
	term    *terminal.Terminal
	dbg     *debug.Debug
	keys    input.Keymap

	font      rl.Font
	touches   map[int32]touch
	width     int
	height    int
	pending   int
	total     int
	cancel    context.CancelFunc
	audioOpen bool
}

// New prepares an app. Nothing touches the window until Run.
func New(prefs config.Prefs, cat *catalog.Catalog, log *logger.Logger) *App {
	desktop := prefs.Desktop(touchPlatform())
	return &App{
		prefs:   prefs,
		log:     log,
		cat:     cat,
		desktop: desktop,
		fetcher: assets.New(prefs.AssetCacheDir),
		locker:  NewLocker(desktop),
		speaker: NewSpeaker(prefs.AudioVolume),
		keys:    input.DefaultKeymap(),
		touches: make(map[int32]touch),
	}
}

// touchPlatform reports whether the OS is a touch-first form factor.
func touchPlatform() bool {
	return runtime.GOOS == "android" || runtime.GOOS == "ios"
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	return graphics.Run(graphics.Window{
		Title:      windowTitle,
		Width:      a.prefs.WindowWidth,
		Height:     a.prefs.WindowHeight,
		TargetFPS:  a.prefs.TargetFPS,
		Fullscreen: !a.desktop,
	}, a.setup, a.update, a.draw, a.shutdown)
}

func (a *App) setup() error {
	rl.InitAudioDevice()
	a.audioOpen = true
	if !rl.IsAudioDeviceReady() {
		a.log.Log("platform: no audio device, narration disabled")
	}

	a.width, a.height = rl.GetScreenWidth(), rl.GetScreenHeight()
	a.scene = scene.New()
	a.scene.ShowHotspots = a.prefs.ShowHotspots
	a.ctl = tour.New(tour.Deps{
		Catalog: a.cat,
		Sink:    a.scene,
		Stage:   a.scene,
		Speaker: a.speaker,
		Loader:  NewLoader(a.fetcher),
		Locker:  a.locker,
		Log:     a.log,
	}, tour.Options{
		Desktop:     a.desktop,
		MoveSpeed:   a.prefs.MoveSpeed,
		Sensitivity: a.prefs.LookSensitivity,
		FovY:        a.prefs.FovY,
		Width:       a.width,
		Height:      a.height,
	})
	a.ctl.SetShowHotspots(a.prefs.ShowHotspots)
	a.ctl.SetShowFPS(a.prefs.ShowFPS)

	a.ui = ui.New()
	panels, err := ui.NewPanels(a.ui)
	if err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	a.panels = panels

	reg := a.ctl.Commands()
	a.term = terminal.New(a.log)
	a.term.Run = func(line string) bool { return a.ctl.Run(reg, line) }
	a.term.OnToggle = func(open bool) {
		if open {
			a.ctl.Escape()
		}
		a.ctl.SetConsole(open)
	}
	a.dbg = debug.New()

	if path := fonts.Find(); path != "" {
		a.font = rl.LoadFontEx(path, uiFontSize, nil)
		a.ui.SetFont(a.font)
		a.term.SetFont(a.font)
		a.dbg.SetFont(a.font)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.loadMuseum(ctx)
	a.log.Logf("tour: %d navigation, %d exhibits, %d pictures, desktop=%t",
		len(a.cat.Navigation), len(a.cat.Exhibits), len(a.cat.Pictures), a.desktop)
	return nil
}

// loadMuseum fetches the environment and the museum model in the background
// and decodes each on the main thread as it arrives. A failure still counts
// as done, so the loading screen always clears.
func (a *App) loadMuseum(ctx context.Context) {
	m := a.cat.Museum
	a.load(ctx, "museum", m.ModelURL, func(path string) error {
		model, err := scene.LoadModel(path)
		if err != nil {
			return err
		}
		scale := m.Scale
		if scale.Len() == 0 {
			scale = mgl32.Vec3{1, 1, 1}
		}
		a.scene.SetMuseum(model, scale)
		return nil
	})
	if m.EnvironmentURL != "" {
		a.load(ctx, "environment", m.EnvironmentURL, a.scene.LoadEnvironment)
	}
}

func (a *App) load(ctx context.Context, what, url string, decode func(path string) error) {
	a.pending++
	a.total++
	q := a.ctl.Queue()
	go func() {
		path, err := a.fetcher.Fetch(ctx, url)
		q.Post(func() {
			if err == nil {
				err = decode(path)
			}
			if err != nil {
				a.log.Logf("platform: %s %s: %v", what, url, err)
				a.ctl.Overlay().Notify("Could not load the " + what)
			}
			a.pending--
			if a.pending == 0 {
				a.ctl.SetLoaded()
			}
		})
	}()
}

// progress is the fraction of museum assets done.
func (a *App) progress() float32 {
	if a.total == 0 {
		return 1
	}
	return float32(a.total-a.pending) / float32(a.total)
}

func (a *App) update(dt float32) {
	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); w != a.width || h != a.height {
		a.width, a.height = w, h
		a.ctl.Resize(w, h)
	}
	a.term.Update()
	a.poll()
	a.ctl.Frame(dt)

	a.scene.ShowHotspots = a.ctl.ShowHotspots()
	a.scene.SyncCamera(a.ctl.Rig())
	a.dbg.ShowFPS = a.ctl.ShowFPS()
	a.dbg.SetPose(a.ctl.Rig().Pose())
	a.panels.Sync(a.view())
}

func (a *App) view() ui.View {
	o := a.ctl.Overlay()
	return ui.View{
		Modal:    o.Current(),
		Exhibit:  o.Exhibit(),
		Video:    o.Video(),
		Loading:  o.Loading(),
		Notices:  o.Notices(),
		Touch:    !a.desktop,
		Locked:   a.locker.Locked(),
		Loaded:   a.ctl.Loaded(),
		Progress: a.progress(),
	}
}

func (a *App) draw() {
	a.scene.Draw()
	if a.ctl.JoystickVisible() {
		j := a.ctl.Joystick()
		ui.DrawJoystick(j.Center, j.Knob(), tour.PadRadius)
	}
	a.ui.Draw()
	a.term.Draw()
	a.dbg.Draw()
}

// shutdown stops pending fetches and frees everything still on the GPU or audio device.
// It runs before the window closes.
func (a *App) shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.ctl != nil {
		a.ctl.Session().Close()
	}
	if a.scene != nil {
		a.scene.Unload()
	}
	if a.font.Texture.ID != 0 {
		rl.UnloadFont(a.font)
	}
	if a.audioOpen {
		rl.CloseAudioDevice()
	}
}
