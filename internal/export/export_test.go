package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/momento-cli/internal/pipeline"
)

func TestSuggestedName(t *testing.T) {
	ts := time.UnixMilli(1712345678901)
	assert.Equal(t, "momento-1712345678901.jpg", SuggestedName(ts))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ts := time.UnixMilli(42)
	img := pipeline.EncodedImage{Data: []byte{0xff, 0xd8, 0xff}, Extension: "jpg"}

	first, err := WriteFile(dir, img, ts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "momento-42.jpg"), first)

	second, err := WriteFile(dir, img, ts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "momento-42-1.jpg"), second)

	got, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, img.Data, got)
}

func TestWriteFileUsesEncoderExtension(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, pipeline.EncodedImage{Data: []byte("x"), Extension: "png"}, time.UnixMilli(7))
	require.NoError(t, err)
	assert.Equal(t, "momento-7.png", filepath.Base(path))
}

func TestWriteFileRejectsEmpty(t *testing.T) {
	_, err := WriteFile(t.TempDir(), pipeline.EncodedImage{}, time.Now())
	assert.Error(t, err)
}
