package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a photo discovered under the input directory.
type Source struct {
	AbsPath string
	RelPath string // slash-separated, relative to the input dir
	Key     string // RelPath without extension
	Size    int64
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// ScanImages walks inputDir and returns every decodable photo, sorted by
// key. Hidden directories and skipDir are not descended into.
func ScanImages(inputDir, skipDir string) ([]Source, error) {
	var sources []Source
	skipAbs, _ := filepath.Abs(skipDir)

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != inputDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if skipDir != "" && path != inputDir {
				if abs, _ := filepath.Abs(path); abs == skipAbs {
					return filepath.SkipDir
				}
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		sources = append(sources, Source{
			AbsPath: path,
			RelPath: rel,
			Key:     strings.TrimSuffix(rel, filepath.Ext(rel)),
			Size:    info.Size(),
		})
		return nil
	})

	sort.Slice(sources, func(i, j int) bool { return sources[i].Key < sources[j].Key })
	return sources, err
}
