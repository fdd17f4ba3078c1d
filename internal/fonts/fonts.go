// Package fonts finds the optional UI font shipped next to the binary.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf"),
// sorted. Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Find returns the first font under the first of dirs that has any, preferring a file whose
// name contains "Regular". It returns "" when there is none.
func Find(dirs ...string) string {
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	for _, dir := range dirs {
		found, err := ScanDir(dir)
		if err != nil || len(found) == 0 {
			continue
		}
		pick := found[0]
		for _, f := range found {
			if strings.Contains(filepath.Base(f), "Regular") {
				pick = f
				break
			}
		}
		return filepath.Join(dir, filepath.FromSlash(pick))
	}
	return ""
}
