// Package config holds the tour preferences. They persist as JSON and every
// key can be overridden with a TOUR_* environment variable.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is the preferences file, relative to the process working directory.
const DefaultPath = "config/tour.json"

// EnvPrefix is prepended to upper-cased keys for environment overrides, e.g. TOUR_MOVE_SPEED.
const EnvPrefix = "TOUR"

// Touch modes.
const (
	TouchAuto = "auto"
	TouchOn   = "on"
	TouchOff  = "off"
)

// Prefs are the tour's user preferences.
type Prefs struct {
	MoveSpeed       float32 `json:"move_speed" mapstructure:"move_speed"`
	LookSensitivity float32 `json:"look_sensitivity" mapstructure:"look_sensitivity"`
	FovY            float32 `json:"fov" mapstructure:"fov"`
	AssetCacheDir   string  `json:"asset_cache_dir" mapstructure:"asset_cache_dir"`
	LogPath         string  `json:"log_path" mapstructure:"log_path"`
	CatalogPath     string  `json:"catalog_path,omitempty" mapstructure:"catalog_path"`
	ShowFPS         bool    `json:"show_fps" mapstructure:"show_fps"`
	ShowHotspots    bool    `json:"show_hotspots" mapstructure:"show_hotspots"`
	Touch           string  `json:"touch" mapstructure:"touch"`
	TargetFPS       int32   `json:"target_fps" mapstructure:"target_fps"`
	WindowWidth     int32   `json:"window_width" mapstructure:"window_width"`
	WindowHeight    int32   `json:"window_height" mapstructure:"window_height"`
	AudioVolume     float32 `json:"audio_volume" mapstructure:"audio_volume"`
	HomeURL         string  `json:"home_url" mapstructure:"home_url"`
}

// Default returns the default preferences.
func Default() Prefs {
	return Prefs{
		MoveSpeed:       30,
		LookSensitivity: 0.002,
		FovY:            90,
		AssetCacheDir:   ".cache/assets",
		LogPath:         "logs/tour.txt",
		Touch:           TouchAuto,
		TargetFPS:       60,
		WindowWidth:     1280,
		WindowHeight:    720,
		AudioVolume:     0.5,
		HomeURL:         "https://github.com",
	}
}

// Load reads preferences from path (DefaultPath if empty) and applies TOUR_*
// environment overrides. A missing or unparsable file yields the defaults;
// the file is never created.
func Load(path string) (Prefs, error) {
	if path == "" {
		path = DefaultPath
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &parseErr) {
			return Default(), fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var p Prefs
	if err := v.Unmarshal(&p); err != nil {
		return Default(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

func setDefaults(v *viper.Viper, d Prefs) {
	v.SetDefault("move_speed", d.MoveSpeed)
	v.SetDefault("look_sensitivity", d.LookSensitivity)
	v.SetDefault("fov", d.FovY)
	v.SetDefault("asset_cache_dir", d.AssetCacheDir)
	v.SetDefault("log_path", d.LogPath)
	v.SetDefault("catalog_path", d.CatalogPath)
	v.SetDefault("show_fps", d.ShowFPS)
	v.SetDefault("show_hotspots", d.ShowHotspots)
	v.SetDefault("touch", d.Touch)
	v.SetDefault("target_fps", d.TargetFPS)
	v.SetDefault("window_width", d.WindowWidth)
	v.SetDefault("window_height", d.WindowHeight)
	v.SetDefault("audio_volume", d.AudioVolume)
	v.SetDefault("home_url", d.HomeURL)
}

// Validate rejects values the tour cannot run with.
func (p Prefs) Validate() error {
	switch p.Touch {
	case TouchAuto, TouchOn, TouchOff:
	default:
		return fmt.Errorf("config: touch must be auto, on or off, got %q", p.Touch)
	}
	if p.MoveSpeed <= 0 || p.LookSensitivity <= 0 {
		return fmt.Errorf("config: move_speed and look_sensitivity must be positive")
	}
	if p.FovY <= 0 || p.FovY >= 180 {
		return fmt.Errorf("config: fov must be in (0, 180), got %v", p.FovY)
	}
	if p.AudioVolume < 0 || p.AudioVolume > 1 {
		return fmt.Errorf("config: audio_volume must be in [0, 1], got %v", p.AudioVolume)
	}
	return nil
}

// Desktop resolves the touch mode. In auto mode, touchDetected decides.
func (p Prefs) Desktop(touchDetected bool) bool {
	switch p.Touch {
	case TouchOn:
		return false
	case TouchOff:
		return true
	}
	return !touchDetected
}

// Save writes preferences to path (DefaultPath if empty), creating the directory if needed.
func Save(path string, p Prefs) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
