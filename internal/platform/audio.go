package platform

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"virtual-museum/internal/exhibit"
)

// ErrNoAudio is returned when a clip is decoded without a working audio device.
var ErrNoAudio = errors.New("audio device unavailable")

// Clip is a decoded narration held by the audio device.
type Clip struct {
	sound    rl.Sound
	released bool
}

// LoadClip decodes the audio file at path. Must run on the main thread.
func LoadClip(path string) (*Clip, error) {
	if !rl.IsAudioDeviceReady() {
		return nil, fmt.Errorf("platform: clip %s: %w", path, ErrNoAudio)
	}
	s := rl.LoadSound(path)
	if !rl.IsSoundValid(s) {
		return nil, fmt.Errorf("platform: clip %s: cannot decode", path)
	}
	return &Clip{sound: s}, nil
}

// Release unloads the sound. Further calls do nothing.
func (c *Clip) Release() {
	if c.released {
		return
	}
	c.released = true
	rl.StopSound(c.sound)
	rl.UnloadSound(c.sound)
}

// Speaker is the one playback handle shared by every exhibit.
type Speaker struct {
	volume  float32
	current *Clip
}

var _ exhibit.Speaker = (*Speaker)(nil)

// NewSpeaker returns a speaker playing at volume (0..1).
func NewSpeaker(volume float32) *Speaker {
	return &Speaker{volume: volume}
}

// Play implements exhibit.Speaker. Clips not created by LoadClip are ignored.
func (s *Speaker) Play(c exhibit.Clip) {
	clip, ok := c.(*Clip)
	if !ok || clip.released {
		return
	}
	s.Stop()
	rl.SetSoundVolume(clip.sound, s.volume)
	rl.PlaySound(clip.sound)
	s.current = clip
}

// Stop implements exhibit.Speaker.
func (s *Speaker) Stop() {
	if s.current == nil {
		return
	}
	if !s.current.released {
		rl.StopSound(s.current.sound)
	}
	s.current = nil
}
