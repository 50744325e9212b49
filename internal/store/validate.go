package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/momento-cli/internal/hasher"
)

// Validate checks the index against the files on disk and returns one
// message per problem found. An empty result means the gallery is intact.
func (s *Store) Validate() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, err := readIndex(s.indexPath())
	if err != nil {
		return nil, err
	}
	return validateIndex(ix, s.dir), nil
}

func validateIndex(ix *Index, dir string) []string {
	var errs []string

	seenIDs := map[int64]bool{}
	seenPaths := map[string]bool{}
	for i, p := range ix.Photos {
		if seenIDs[p.ID] {
			errs = append(errs, fmt.Sprintf("photo[%d]: duplicate id %d", i, p.ID))
		}
		seenIDs[p.ID] = true
		if p.ID >= ix.NextID {
			errs = append(errs, fmt.Sprintf("photo %d: id not below next_id %d", p.ID, ix.NextID))
		}

		if p.Width <= 0 || p.Height <= 0 {
			errs = append(errs, fmt.Sprintf("photo %d: invalid dimensions %dx%d", p.ID, p.Width, p.Height))
		}
		if p.AspectRatio != "9:16" && p.AspectRatio != "16:9" {
			errs = append(errs, fmt.Sprintf("photo %d: unknown aspect ratio %q", p.ID, p.AspectRatio))
		}
		if p.ThumbHash == "" {
			errs = append(errs, fmt.Sprintf("photo %d: missing thumbhash", p.ID))
		}
		if p.Path == "" {
			errs = append(errs, fmt.Sprintf("photo %d: missing path", p.ID))
			continue
		}
		if seenPaths[p.Path] {
			errs = append(errs, fmt.Sprintf("photo %d: duplicate path %q", p.ID, p.Path))
		}
		seenPaths[p.Path] = true

		full := filepath.Join(dir, p.Path)
		f, err := os.Open(full)
		if err != nil {
			errs = append(errs, fmt.Sprintf("photo %d: file not found: %s", p.ID, p.Path))
			continue
		}
		info, err := f.Stat()
		if err == nil && info.Size() != p.Size {
			errs = append(errs, fmt.Sprintf("photo %d: size mismatch: index=%d, disk=%d", p.ID, p.Size, info.Size()))
		}
		sum, err := hasher.ReaderHash(f, 16)
		f.Close()
		if err != nil {
			errs = append(errs, fmt.Sprintf("photo %d: read %s: %v", p.ID, p.Path, err))
		} else if sum != p.Hash {
			errs = append(errs, fmt.Sprintf("photo %d: hash mismatch: index=%s, disk=%s", p.ID, p.Hash, sum))
		}
	}

	if ix.Stats.TotalPhotos != len(ix.Photos) {
		errs = append(errs, fmt.Sprintf("stats.total_photos mismatch: %d != %d", ix.Stats.TotalPhotos, len(ix.Photos)))
	}
	var total int64
	for _, p := range ix.Photos {
		total += p.Size
	}
	if ix.Stats.TotalBytes != total {
		errs = append(errs, fmt.Sprintf("stats.total_bytes mismatch: %d != %d", ix.Stats.TotalBytes, total))
	}
	return errs
}
