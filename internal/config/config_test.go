package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MOMENTO_HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", cfg.Output.Format)
	assert.Equal(t, 90, cfg.Output.JpegQuality)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, filepath.Join(home, "gallery"), cfg.Store.Dir)
	assert.Equal(t, filepath.Join(home, "prefs.yaml"), cfg.Prefs.Path)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momento.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  format: png
  jpeg_quality: 75
store:
  dir: /tmp/gallery
fonts:
  dir: /usr/share/fonts/momento
workers: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", cfg.Output.Format)
	assert.Equal(t, 75, cfg.Output.JpegQuality)
	assert.Equal(t, "/tmp/gallery", cfg.Store.Dir)
	assert.Equal(t, "/usr/share/fonts/momento", cfg.Fonts.Dir)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	q := filepath.Join(t.TempDir(), "q.yaml")
	require.NoError(t, os.WriteFile(q, []byte("output:\n  jpeg_quality: 150\n"), 0o644))
	_, err = Load(q)
	assert.ErrorContains(t, err, "out of range")
}
