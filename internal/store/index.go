package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func newIndex() *Index {
	return &Index{
		Version: SupportedIndexVersion,
		NextID:  1,
	}
}

// ComputeStats recalculates aggregate statistics from the photo list.
func (ix *Index) ComputeStats() {
	s := Stats{TotalPhotos: len(ix.Photos)}
	for _, p := range ix.Photos {
		s.TotalBytes += p.Size
		if s.ByAspect == nil {
			s.ByAspect = make(map[string]int)
		}
		s.ByAspect[p.AspectRatio]++
		if s.Oldest == 0 || p.Timestamp < s.Oldest {
			s.Oldest = p.Timestamp
		}
		if p.Timestamp > s.Newest {
			s.Newest = p.Timestamp
		}
	}
	ix.Stats = s
}

func readIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newIndex(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var ix Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	if ix.Version != SupportedIndexVersion {
		return nil, fmt.Errorf("unsupported index version: %d", ix.Version)
	}
	if ix.NextID < 1 {
		ix.NextID = 1
	}
	return &ix, nil
}

// writeIndex serializes the index and swaps it into place.
func writeIndex(ix *Index, path string) error {
	ix.ComputeStats()
	ix.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}
