package platform

import (
	"context"

	"virtual-museum/internal/assets"
	"virtual-museum/internal/exhibit"
	"virtual-museum/internal/scene"
)

// Loader fetches through the asset cache and decodes with raylib.
type Loader struct {
	fetcher *assets.Fetcher
}

var _ exhibit.Loader = (*Loader)(nil)

// NewLoader returns a loader over f.
func NewLoader(f *assets.Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Fetch implements exhibit.Loader. It may block and is safe off the main thread.
func (l *Loader) Fetch(ctx context.Context, url string) (string, error) {
	return l.fetcher.Fetch(ctx, url)
}

// DecodeModel implements exhibit.Loader.
func (l *Loader) DecodeModel(path string) (exhibit.Model, error) {
	m, err := scene.LoadModel(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeClip implements exhibit.Loader.
func (l *Loader) DecodeClip(path string) (exhibit.Clip, error) {
	c, err := LoadClip(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}
