package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestSaveWritesFileAndIndex(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	data := jpegBytes(t, 90, 160, color.RGBA{200, 40, 40, 255})
	ts := time.UnixMilli(1700000000000)
	p, err := s.Save(NewPhoto{Data: data, Timestamp: ts, AspectRatio: "9:16"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, int64(1700000000000), p.Timestamp)
	assert.Equal(t, 90, p.Width)
	assert.Equal(t, 160, p.Height)
	assert.Equal(t, "jpeg", p.Format)
	assert.Equal(t, int64(len(data)), p.Size)
	assert.Len(t, p.Hash, 16)
	assert.Equal(t, "1."+p.Hash[:8]+".jpg", p.Path)
	assert.NotEmpty(t, p.ThumbHash)
	require.NotNil(t, p.AvgColor)
	assert.InDelta(t, 200, int(p.AvgColor[0]), 6)

	onDisk, err := os.ReadFile(filepath.Join(s.Dir(), p.Path))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	raw, err := os.ReadFile(filepath.Join(s.Dir(), IndexFile))
	require.NoError(t, err)
	var ix Index
	require.NoError(t, json.Unmarshal(raw, &ix))
	assert.Equal(t, SupportedIndexVersion, ix.Version)
	assert.Equal(t, int64(2), ix.NextID)
	assert.Equal(t, 1, ix.Stats.TotalPhotos)
	assert.Equal(t, 1, ix.Stats.ByAspect["9:16"])
}

func TestSaveRejectsGarbage(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	_, err = s.Save(NewPhoto{Data: []byte("nope"), AspectRatio: "9:16"})
	assert.Error(t, err)

	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListNewestFirst(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	data := jpegBytes(t, 16, 9, color.White)

	for _, ms := range []int64{2000, 1000, 3000} {
		_, err := s.Save(NewPhoto{Data: data, Timestamp: time.UnixMilli(ms), AspectRatio: "16:9"})
		require.NoError(t, err)
	}
	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{3000, 2000, 1000}, []int64{list[0].Timestamp, list[1].Timestamp, list[2].Timestamp})
	assert.Equal(t, []int64{3, 1, 2}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestGetAndDelete(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	data := jpegBytes(t, 16, 9, color.Black)
	p, err := s.Save(NewPhoto{Data: data, AspectRatio: "16:9"})
	require.NoError(t, err)

	got, body, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Path, got.Path)
	assert.Equal(t, data, body)

	require.NoError(t, s.Delete(p.ID))
	_, err = os.Stat(filepath.Join(s.Dir(), p.Path))
	assert.True(t, os.IsNotExist(err))

	_, _, err = s.Get(p.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.ErrorIs(t, s.Delete(p.ID), ErrNotFound)

	// ids are never reused
	p2, err := s.Save(NewPhoto{Data: data, AspectRatio: "16:9"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p2.ID)
}

func TestStats(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	a := jpegBytes(t, 9, 16, color.White)
	b := jpegBytes(t, 16, 9, color.White)
	_, err = s.Save(NewPhoto{Data: a, Timestamp: time.UnixMilli(10), AspectRatio: "9:16"})
	require.NoError(t, err)
	_, err = s.Save(NewPhoto{Data: b, Timestamp: time.UnixMilli(20), AspectRatio: "16:9"})
	require.NoError(t, err)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalPhotos)
	assert.Equal(t, int64(len(a)+len(b)), st.TotalBytes)
	assert.Equal(t, int64(10), st.Oldest)
	assert.Equal(t, int64(20), st.Newest)
	assert.Equal(t, map[string]int{"9:16": 1, "16:9": 1}, st.ByAspect)
}

func TestValidate(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	p, err := s.Save(NewPhoto{Data: jpegBytes(t, 16, 9, color.White), AspectRatio: "16:9"})
	require.NoError(t, err)

	problems, err := s.Validate()
	require.NoError(t, err)
	assert.Empty(t, problems)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), p.Path), []byte("corrupted"), 0o644))
	problems, err = s.Validate()
	require.NoError(t, err)
	assert.Len(t, problems, 2) // size and hash

	require.NoError(t, os.Remove(filepath.Join(s.Dir(), p.Path)))
	problems, err = s.Validate()
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "file not found")
}

func TestUnsupportedIndexVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(`{"version": 7}`), 0o644))
	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.List()
	assert.ErrorContains(t, err, "unsupported index version")
}
