//go:build ignore

// gen_fixtures creates sample photos and a custom frame for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "photos", "trip"), 0o755)

	// Landscape and portrait photos (JPEG), as a camera would deliver them.
	writeJPEG(filepath.Join(dir, "photos", "beach.jpg"), gradient(1920, 1080))
	writeJPEG(filepath.Join(dir, "photos", "trip", "selfie.jpg"), gradient(1080, 1920))

	// A raw 4:3 camera frame for `momento capture`.
	writeJPEG(filepath.Join(dir, "camera.jpg"), gradient(1280, 960))

	// Custom frame: opaque border around a transparent window.
	writePNG(filepath.Join(dir, "frame.png"), windowFrame(540, 960, 48))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 4 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func windowFrame(w, h, border int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < border || x >= w-border || y < border || y >= h-border {
				img.SetNRGBA(x, y, color.NRGBA{R: 244, G: 114, B: 182, A: 255})
			}
		}
	}
	return img
}

func writePNG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
