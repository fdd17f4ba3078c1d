// Package catalog is the declarative content of the tour: the museum scene,
// the start pose, and ordered lists of navigation, exhibit and picture hotspots.
// A catalog is loaded once at startup and never mutated afterwards.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid catalog")

//go:embed default.yaml
var defaultYAML []byte

// Pose is a camera placement. Yaw is in radians, 0 looks down -Z.
type Pose struct {
	Position mgl32.Vec3 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
}

// Museum is the environment the tour walks through.
type Museum struct {
	ModelURL       string     `yaml:"model_url"`
	Scale          mgl32.Vec3 `yaml:"scale"`
	EnvironmentURL string     `yaml:"environment_url"`
}

// Navigation is a point that flies the camera to Target when picked.
type Navigation struct {
	Name   string     `yaml:"name"`
	Anchor mgl32.Vec3 `yaml:"anchor"`
	Radius float32    `yaml:"radius,omitempty"`
	Target Pose       `yaml:"target"`
}

// Exhibit is an artifact shown with a model and an audio narration.
type Exhibit struct {
	Anchor      mgl32.Vec3 `yaml:"anchor"`
	ModelOffset mgl32.Vec3 `yaml:"model_offset"`
	ModelScale  mgl32.Vec3 `yaml:"model_scale"`
	ModelURL    string     `yaml:"model_url"`
	AudioURL    string     `yaml:"audio_url"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
}

// Picture is a framed picture that opens an embedded video.
type Picture struct {
	Anchor      mgl32.Vec3 `yaml:"anchor"`
	VideoID     string     `yaml:"video_id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
}

// Catalog is the whole content set.
type Catalog struct {
	Museum     Museum       `yaml:"museum"`
	Start      Pose         `yaml:"start"`
	Navigation []Navigation `yaml:"navigation"`
	Exhibits   []Exhibit    `yaml:"exhibits"`
	Pictures   []Picture    `yaml:"pictures"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// Load reads a catalog from path. An empty path selects the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the fields every hotspot needs and that no two anchors coincide.
func (c *Catalog) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	if c.Museum.ModelURL == "" {
		add("museum.model_url is required")
	}
	seen := make(map[mgl32.Vec3]string)
	anchor := func(where string, v mgl32.Vec3) {
		if prev, ok := seen[v]; ok {
			add("%s: anchor %v already used by %s", where, v, prev)
			return
		}
		seen[v] = where
	}
	for i, n := range c.Navigation {
		where := fmt.Sprintf("navigation[%d]", i)
		if n.Radius < 0 {
			add("%s: radius must not be negative", where)
		}
		anchor(where, n.Anchor)
	}
	for i, e := range c.Exhibits {
		where := fmt.Sprintf("exhibits[%d]", i)
		if e.ModelURL == "" {
			add("%s: model_url is required", where)
		}
		if e.Title == "" {
			add("%s: title is required", where)
		}
		anchor(where, e.Anchor)
	}
	for i, p := range c.Pictures {
		where := fmt.Sprintf("pictures[%d]", i)
		if p.VideoID == "" {
			add("%s: video_id is required", where)
		}
		anchor(where, p.Anchor)
	}
	if len(problems) > 0 {
		return fmt.Errorf("catalog: %w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Summary writes one line per hotspot, grouped by kind in picking order.
func (c *Catalog) Summary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "museum\t%s\n", c.Museum.ModelURL)
	for i, n := range c.Navigation {
		fmt.Fprintf(tw, "navigation[%d]\t%s\t%v\n", i, n.Name, n.Anchor)
	}
	for i, e := range c.Exhibits {
		fmt.Fprintf(tw, "exhibits[%d]\t%s\t%v\n", i, e.Title, e.Anchor)
	}
	for i, p := range c.Pictures {
		fmt.Fprintf(tw, "pictures[%d]\t%s\t%v\n", i, p.Title, p.Anchor)
	}
	return tw.Flush()
}
