package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
)

// gltfRefs is the part of a glTF document that names external files.
type gltfRefs struct {
	Buffers []struct {
		URI string `json:"uri"`
	} `json:"buffers"`
	Images []struct {
		URI string `json:"uri"`
	} `json:"images"`
}

// siblingURIs lists the relative file references of a glTF document.
// Embedded data URIs and absolute URLs are skipped.
func siblingURIs(doc []byte) ([]string, error) {
	var refs gltfRefs
	if err := json.Unmarshal(doc, &refs); err != nil {
		return nil, fmt.Errorf("assets: gltf: %w", err)
	}
	var uris []string
	add := func(uri string) {
		if uri == "" || strings.HasPrefix(uri, "data:") {
			return
		}
		if u, err := url.Parse(uri); err != nil || u.IsAbs() || strings.HasPrefix(uri, "/") {
			return
		}
		uris = append(uris, uri)
	}
	for _, b := range refs.Buffers {
		add(b.URI)
	}
	for _, img := range refs.Images {
		add(img.URI)
	}
	return uris, nil
}

func (f *Fetcher) fetchSiblings(ctx context.Context, base *url.URL, dir, doc string) error {
	data, err := os.ReadFile(doc)
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	uris, err := siblingURIs(data)
	if err != nil {
		return err
	}
	for _, uri := range uris {
		rel, err := url.Parse(uri)
		if err != nil {
			continue
		}
		name := localName(rel.Path)
		if name == "" {
			continue
		}
		if _, err := f.fetchInto(ctx, base.ResolveReference(rel), dir, name); err != nil {
			return err
		}
	}
	return nil
}

// localName keeps a relative path inside the cache folder. Paths that climb
// out of it are rejected.
func localName(p string) string {
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return ""
	}
	parts := strings.Split(clean, "/")
	for i, part := range parts {
		parts[i] = sanitizeFilename(part)
	}
	return strings.Join(parts, "/")
}
