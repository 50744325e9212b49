// Package store keeps saved compositions in a directory with a JSON
// gallery index alongside them.
package store

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/AnyUserName/momento-cli/internal/hasher"
	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/AnyUserName/momento-cli/internal/thumbhash"
)

// ErrNotFound is returned when no photo has the requested id.
var ErrNotFound = errors.New("photo not found")

// NewPhoto is the input to Save.
type NewPhoto struct {
	Data        []byte
	Timestamp   time.Time
	AspectRatio string
}

// Store is a directory-backed photo gallery. It is safe for concurrent use
// within one process.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open prepares dir for use, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) indexPath() string { return filepath.Join(s.dir, IndexFile) }

// Save writes the encoded photo as <id>.<hash8>.<ext> and records it in the
// index.
func (s *Store) Save(p NewPhoto) (Photo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(p.Data))
	if err != nil {
		return Photo{}, fmt.Errorf("%w: %w", raster.ErrDecode, err)
	}
	img, err := raster.Decode(p.Data)
	if err != nil {
		return Photo{}, err
	}
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := readIndex(s.indexPath())
	if err != nil {
		return Photo{}, err
	}

	hash := hasher.ContentHash(p.Data, 16)
	avg := computeAvgColor(img.Image())
	photo := Photo{
		ID:          ix.NextID,
		Timestamp:   ts.UnixMilli(),
		AspectRatio: p.AspectRatio,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      format,
		Size:        int64(len(p.Data)),
		Hash:        hash,
		Path:        fmt.Sprintf("%d.%s.%s", ix.NextID, hash[:8], extension(format)),
		ThumbHash:   base64.StdEncoding.EncodeToString(thumbhash.Encode(img.Image())),
		AvgColor:    &avg,
	}

	if err := os.WriteFile(filepath.Join(s.dir, photo.Path), p.Data, 0o644); err != nil {
		return Photo{}, fmt.Errorf("write %s: %w", photo.Path, err)
	}
	ix.NextID++
	ix.Photos = append(ix.Photos, photo)
	if err := writeIndex(ix, s.indexPath()); err != nil {
		os.Remove(filepath.Join(s.dir, photo.Path))
		return Photo{}, err
	}
	return photo, nil
}

// List returns every photo, newest first.
func (s *Store) List() ([]Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := readIndex(s.indexPath())
	if err != nil {
		return nil, err
	}
	out := append([]Photo(nil), ix.Photos...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Get returns the index entry and file contents for id.
func (s *Store) Get(id int64) (Photo, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := readIndex(s.indexPath())
	if err != nil {
		return Photo{}, nil, err
	}
	i := find(ix, id)
	if i < 0 {
		return Photo{}, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ix.Photos[i].Path))
	if err != nil {
		return Photo{}, nil, fmt.Errorf("read %s: %w", ix.Photos[i].Path, err)
	}
	return ix.Photos[i], data, nil
}

// Delete removes the photo file and its index entry. A file that is already
// gone is not an error.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := readIndex(s.indexPath())
	if err != nil {
		return err
	}
	i := find(ix, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	path := filepath.Join(s.dir, ix.Photos[i].Path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", ix.Photos[i].Path, err)
	}
	ix.Photos = append(ix.Photos[:i], ix.Photos[i+1:]...)
	return writeIndex(ix, s.indexPath())
}

// Stats returns the aggregate statistics recorded in the index.
func (s *Store) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := readIndex(s.indexPath())
	if err != nil {
		return Stats{}, err
	}
	ix.ComputeStats()
	return ix.Stats, nil
}

func find(ix *Index, id int64) int {
	for i, p := range ix.Photos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func extension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// computeAvgColor calculates the average RGB color of an image.
func computeAvgColor(img image.Image) [3]uint8 {
	b := img.Bounds()
	count := uint64(b.Dx()) * uint64(b.Dy())
	if count == 0 {
		return [3]uint8{}
	}
	var rSum, gSum, bSum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(bl >> 8)
		}
	}
	return [3]uint8{
		uint8(rSum / count),
		uint8(gSum / count),
		uint8(bSum / count),
	}
}
