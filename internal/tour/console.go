package tour

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"virtual-museum/internal/commands"
)

// Commands returns the developer console commands bound to this controller.
// Output goes to the controller's logger.
func (c *Controller) Commands() *commands.Registry {
	r := commands.NewRegistry()

	r.Register("pose", "", commands.NewFlagSet("pose"), func() error {
		p := c.rig.Pose()
		c.logf("pose %.2f %.2f %.2f yaw %.4f", p.Position.X(), p.Position.Y(), p.Position.Z(), p.Yaw)
		return nil
	})

	gotoFS := commands.NewFlagSet("goto")
	gx := gotoFS.Float64("x", 0, "")
	gy := gotoFS.Float64("y", 0, "")
	gz := gotoFS.Float64("z", 0, "")
	gyaw := gotoFS.Float64("yaw", 0, "")
	r.Register("goto", "-x X -y Y -z Z -yaw R", gotoFS, func() error {
		c.rig.CancelFlight()
		c.rig.Position = mgl32.Vec3{float32(*gx), float32(*gy), float32(*gz)}
		c.rig.Yaw = float32(*gyaw)
		return nil
	})

	hotFS := commands.NewFlagSet("hotspots")
	show := hotFS.Bool("show", true, "")
	r.Register("hotspots", "-show=true|false", hotFS, func() error {
		c.SetShowHotspots(*show)
		return nil
	})

	exFS := commands.NewFlagSet("exhibit")
	exOpen := exFS.Int("open", -1, "")
	exClose := exFS.Bool("close", false, "")
	r.Register("exhibit", "-open N | -close", exFS, func() error {
		if *exClose {
			c.CloseExhibit()
			return nil
		}
		if *exOpen < 0 || *exOpen >= len(c.catalog.Exhibits) {
			return fmt.Errorf("tour: exhibit %d out of range [0, %d)", *exOpen, len(c.catalog.Exhibits))
		}
		c.session.Open(c.catalog.Exhibits[*exOpen])
		c.syncLock()
		return nil
	})

	vidFS := commands.NewFlagSet("video")
	vidOpen := vidFS.Int("open", -1, "")
	vidClose := vidFS.Bool("close", false, "")
	r.Register("video", "-open N | -close", vidFS, func() error {
		if *vidClose {
			c.CloseVideo()
			return nil
		}
		if *vidOpen < 0 || *vidOpen >= len(c.catalog.Pictures) {
			return fmt.Errorf("tour: video %d out of range [0, %d)", *vidOpen, len(c.catalog.Pictures))
		}
		p := c.catalog.Pictures[*vidOpen]
		c.overlay.OpenVideo(p.VideoID, p.Title, p.Description)
		c.syncLock()
		return nil
	})

	fpsFS := commands.NewFlagSet("fps")
	fpsOn := fpsFS.Bool("on", true, "")
	r.Register("fps", "-on=true|false", fpsFS, func() error {
		c.SetShowFPS(*fpsOn)
		return nil
	})

	r.Register("modal", "", commands.NewFlagSet("modal"), func() error {
		c.logf("modal %s, exhibit %s, loading %t", c.overlay.Current(), c.session.State(), c.overlay.Loading())
		return nil
	})

	r.Register("help", "", commands.NewFlagSet("help"), func() error {
		for _, line := range r.Help() {
			c.logf("cmd %s", line)
		}
		return nil
	})
	return r
}

// Run executes a console line and logs any error. Lines without the command
// prefix are ignored. It reports whether the line was a command.
func (c *Controller) Run(reg *commands.Registry, line string) bool {
	args, ok := commands.Parse(line)
	if !ok {
		return false
	}
	if err := reg.Execute(args); err != nil {
		c.logf("%v", err)
	}
	return true
}
