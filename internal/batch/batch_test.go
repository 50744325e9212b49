package batch

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/frame"
	"github.com/AnyUserName/momento-cli/internal/pipeline"
	"github.com/AnyUserName/momento-cli/internal/state"
	"github.com/AnyUserName/momento-cli/internal/store"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 180
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "trip", "a.png"), 4, 4)
	writePNG(t, filepath.Join(dir, ".cache", "x.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "out", "old.png"), 4, 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	got, err := ScanImages(dir, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Key)
	assert.Equal(t, "trip/a", got[1].Key)
	assert.Equal(t, "trip/a.png", got[1].RelPath)
}

func TestRunRendersEveryPhoto(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writePNG(t, filepath.Join(in, "one.png"), 160, 90)
	writePNG(t, filepath.Join(in, "sub", "two.png"), 90, 160)

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	p := pipeline.New(pipeline.Config{})
	r := New(p, Config{
		InputDir:  in,
		OutputDir: out,
		State:     state.State{Filter: filter.Sepia, Frame: frame.Of(frame.Cinema)},
		Workers:   2,
		Store:     st,
	})
	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Failed)
	require.Len(t, rep.Results, 2)

	assert.FileExists(t, filepath.Join(out, "one.jpg"))
	assert.FileExists(t, filepath.Join(out, "sub", "two.jpg"))
	assert.Equal(t, 160, rep.Results[0].Width)
	assert.Equal(t, 90, rep.Results[0].Height)

	photos, err := st.List()
	require.NoError(t, err)
	require.Len(t, photos, 2)
	aspects := []string{photos[0].AspectRatio, photos[1].AspectRatio}
	assert.ElementsMatch(t, []string{"16:9", "9:16"}, aspects)
}

func TestRunPartialFailure(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "good.png"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.jpg"), []byte("not a jpeg"), 0o644))

	r := New(pipeline.New(pipeline.Config{}), Config{InputDir: in, OutputDir: t.TempDir(), Workers: 1})
	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Failed)
}

func TestRunAllFail(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.png"), []byte("x"), 0o644))

	r := New(pipeline.New(pipeline.Config{}), Config{InputDir: in, OutputDir: t.TempDir()})
	_, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "all 1 images failed")
}

func TestRunEmptyDir(t *testing.T) {
	r := New(pipeline.New(pipeline.Config{}), Config{InputDir: t.TempDir(), OutputDir: t.TempDir()})
	_, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "no images found")
}

func TestRunCancelled(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), 8, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(pipeline.New(pipeline.Config{}), Config{InputDir: in, OutputDir: t.TempDir()})
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
