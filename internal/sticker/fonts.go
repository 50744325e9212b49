package sticker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
)

// Fonts resolves sticker font families. Files named after the family in
// Dir (e.g. "Dancing Script.ttf" or "DancingScript.otf") take precedence;
// otherwise a bold Go font of similar character is used.
type Fonts struct {
	Dir string

	mu    sync.Mutex
	cache map[string]*opentype.Font
}

// scriptFamilies are drawn with the bold italic Go font when no file is found.
var scriptFamilies = map[string]bool{
	"dancing script": true,
	"pacifico":       true,
	"great vibes":    true,
}

// Load returns the parsed font for family.
func (f *Fonts) Load(family string) (*opentype.Font, error) {
	key := strings.ToLower(strings.TrimSpace(family))

	f.mu.Lock()
	defer f.mu.Unlock()
	if fnt, ok := f.cache[key]; ok {
		return fnt, nil
	}

	data, err := f.read(family)
	if err != nil {
		return nil, err
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", family, err)
	}
	if f.cache == nil {
		f.cache = make(map[string]*opentype.Font)
	}
	f.cache[key] = fnt
	return fnt, nil
}

// Face returns a face of family at size pixels. The caller closes it.
func (f *Fonts) Face(family string, size float64) (font.Face, error) {
	fnt, err := f.Load(family)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func (f *Fonts) read(family string) ([]byte, error) {
	if f.Dir != "" {
		compact := strings.ReplaceAll(family, " ", "")
		for _, name := range []string{family + ".ttf", compact + ".ttf", family + ".otf", compact + ".otf"} {
			data, err := os.ReadFile(filepath.Join(f.Dir, name))
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read font %s: %w", name, err)
			}
		}
	}
	key := strings.ToLower(family)
	switch {
	case scriptFamilies[key]:
		return gobolditalic.TTF, nil
	case key == "monospace":
		return gomonobold.TTF, nil
	default:
		return gobold.TTF, nil
	}
}
