// Package assets fetches remote models, audio and textures into an on-disk
// cache so the renderer can load them from a local path.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

// ErrHTTPStatus is wrapped by Fetch when the server answers with anything but 200.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Fetcher downloads assets into CacheDir. Files already cached are not fetched again.
// It is safe for concurrent use.
type Fetcher struct {
	Client    *http.Client
	CacheDir  string
	UserAgent string
}

// New returns a fetcher caching under dir.
func New(dir string) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: 60 * time.Second},
		CacheDir:  dir,
		UserAgent: defaultUserAgent,
	}
}

// Fetch returns a local path for ref. Plain file paths are checked and passed
// through; http(s) URLs are downloaded into the cache. A .gltf document has its
// relative buffers and images fetched next to it. A .zip URL is a bundle: it is
// unpacked and the member named by the fragment (e.g. "pack.zip#scene.gltf") is returned.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		if _, err := os.Stat(ref); err != nil {
			return "", fmt.Errorf("assets: %w", err)
		}
		return ref, nil
	}

	dir := f.dirFor(u)
	if strings.EqualFold(path.Ext(u.Path), ".zip") {
		return f.fetchBundle(ctx, u, dir)
	}
	p, err := f.fetchInto(ctx, u, dir, filenameFromURL(u.Path))
	if err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(p), ".gltf") {
		if err := f.fetchSiblings(ctx, u, dir, p); err != nil {
			return "", err
		}
	}
	return p, nil
}

// dirFor keys the cache by the URL's directory, so documents and the files
// they reference relatively share one folder.
func (f *Fetcher) dirFor(u *url.URL) string {
	base := *u
	base.RawQuery, base.Fragment = "", ""
	base.Path = path.Dir(u.Path)
	sum := sha256.Sum256([]byte(base.String()))
	return filepath.Join(f.CacheDir, hex.EncodeToString(sum[:8]))
}

// fetchInto downloads u to dir/name unless it is already there.
func (f *Fetcher) fetchInto(ctx context.Context, u *url.URL, dir, name string) (string, error) {
	if name == "" {
		name = "download"
	}
	if p, ok := cached(dir, name); ok {
		return p, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assets: %s: %w %d", u, ErrHTTPStatus, resp.StatusCode)
	}

	if filepath.Ext(name) == "" {
		ext := extensionFromContentType(resp.Header.Get("Content-Type"))
		if ext == "" {
			ext = ".bin"
		}
		name += ext
	}
	dest := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".part-*")
	if err != nil {
		return "", fmt.Errorf("assets: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("assets: %s: %w", u, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("assets: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("assets: %w", err)
	}
	return dest, nil
}

// cached finds dir/name, or dir/name.<ext> when name had no extension.
func cached(dir, name string) (string, bool) {
	p := filepath.Join(dir, filepath.FromSlash(name))
	if st, err := os.Stat(p); err == nil && !st.IsDir() {
		return p, true
	}
	if filepath.Ext(name) != "" {
		return "", false
	}
	matches, _ := filepath.Glob(p + ".*")
	if len(matches) > 0 {
		return matches[0], true
	}
	return "", false
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf+json"):
		return ".gltf"
	case strings.Contains(ct, "mpeg"), strings.Contains(ct, "mp3"):
		return ".mp3"
	case strings.Contains(ct, "wav"):
		return ".wav"
	case strings.Contains(ct, "ogg"):
		return ".ogg"
	case strings.Contains(ct, "radiance"):
		return ".hdr"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	}
	return ""
}

func filenameFromURL(p string) string {
	return sanitizeFilename(path.Base(p))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" || name == "." || name == "/" {
		return ""
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		ext := filepath.Ext(name)
		name = name[:96-len(ext)] + ext
	}
	return name
}
