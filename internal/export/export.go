// Package export writes finished compositions to a user-visible directory.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/momento-cli/internal/pipeline"
)

// Prefix starts every exported file name.
const Prefix = "momento-"

// SuggestedName returns the default share name for a photo taken at t.
func SuggestedName(t time.Time) string {
	return nameFor(t, "jpg", 0)
}

func nameFor(t time.Time, ext string, n int) string {
	if ext == "" {
		ext = "jpg"
	}
	if n == 0 {
		return fmt.Sprintf("%s%d.%s", Prefix, t.UnixMilli(), ext)
	}
	return fmt.Sprintf("%s%d-%d.%s", Prefix, t.UnixMilli(), n, ext)
}

// WriteFile stores img in dir under its suggested name and returns the path.
// Existing files are never overwritten; a numeric suffix is added instead.
func WriteFile(dir string, img pipeline.EncodedImage, t time.Time) (string, error) {
	if len(img.Data) == 0 {
		return "", errors.New("export: empty image")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	ext := strings.TrimPrefix(img.Extension, ".")

	for n := 0; n < 100; n++ {
		path := filepath.Join(dir, nameFor(t, ext, n))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("export: %w", err)
		}
		if _, err := f.Write(img.Data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("export: write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("export: close %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("export: too many files named %s", SuggestedName(t))
}
