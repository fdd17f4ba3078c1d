package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"virtual-museum/internal/archive"
)

// ErrNoMember is returned when a bundle has no file matching the requested member.
var ErrNoMember = errors.New("bundle member not found")

// unpackedMarker is written once a bundle has been fully extracted.
const unpackedMarker = ".unpacked"

// fetchBundle downloads and unpacks a zip once, then resolves the member in
// u's fragment. Without a fragment the first .glb or .gltf in the bundle is used.
func (f *Fetcher) fetchBundle(ctx context.Context, u *url.URL, dir string) (string, error) {
	src := *u
	src.Fragment = ""
	name := filenameFromURL(u.Path)
	zipPath, err := f.fetchInto(ctx, &src, dir, name)
	if err != nil {
		return "", err
	}

	out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath)))
	marker := filepath.Join(out, unpackedMarker)
	if _, err := os.Stat(marker); err != nil {
		if _, err := archive.Unzip(zipPath, out); err != nil {
			return "", fmt.Errorf("assets: %s: %w", u.Redacted(), err)
		}
		if err := os.WriteFile(marker, nil, 0644); err != nil {
			return "", fmt.Errorf("assets: %w", err)
		}
	}

	member := localName(u.Fragment)
	if member == "" {
		member = firstModel(out)
	}
	if member == "" {
		return "", fmt.Errorf("assets: %s: %w", u.Redacted(), ErrNoMember)
	}
	p := filepath.Join(out, filepath.FromSlash(member))
	if st, err := os.Stat(p); err != nil || st.IsDir() {
		return "", fmt.Errorf("assets: %s: %s: %w", u.Redacted(), member, ErrNoMember)
	}
	return p, nil
}

// firstModel returns the shallowest .glb or .gltf under dir, relative and slash separated.
func firstModel(dir string) string {
	best := ""
	_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if ext != ".glb" && ext != ".gltf" {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if best == "" || strings.Count(rel, "/") < strings.Count(best, "/") {
			best = rel
		}
		return nil
	})
	return best
}
