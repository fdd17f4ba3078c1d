package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestUnzip(t *testing.T) {
	t.Parallel()
	zp := writeZip(t, map[string]string{
		"scene.gltf":          "{}",
		"textures/marble.png": "png",
	})
	dest := filepath.Join(t.TempDir(), "out")

	got, err := Unzip(zp, dest)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"scene.gltf", "textures/marble.png"}, got)
	data, err := os.ReadFile(filepath.Join(dest, "textures", "marble.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestUnzipRejectsEscape(t *testing.T) {
	t.Parallel()
	zp := writeZip(t, map[string]string{"../evil.txt": "x"})

	_, err := Unzip(zp, filepath.Join(t.TempDir(), "out"))
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestUnzipMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Unzip(filepath.Join(t.TempDir(), "none.zip"), t.TempDir())
	assert.Error(t, err)
}
