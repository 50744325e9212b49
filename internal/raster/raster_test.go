package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(40, 30)); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Width() != 40 || img.Height() != 30 {
		t.Errorf("size: got %dx%d", img.Width(), img.Height())
	}
	if got := img.NRGBAAt(0, 0); got.B != 128 || got.A != 255 {
		t.Errorf("pixel: got %v", got)
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	_, err = Decode(nil)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode for empty input, got %v", err)
	}
}

func TestCanvas_DoesNotAlias(t *testing.T) {
	img := FromImage(gradient(8, 8))
	before := img.NRGBAAt(3, 3)

	c := img.Canvas()
	c.SetNRGBA(3, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	if img.NRGBAAt(3, 3) != before {
		t.Error("writing to canvas mutated the source raster")
	}
}

func TestFromImage_Copies(t *testing.T) {
	src := gradient(4, 4)
	img := FromImage(src)
	src.SetNRGBA(0, 0, color.NRGBA{A: 0})
	if img.NRGBAAt(0, 0).A != 255 {
		t.Error("raster aliases the image it was built from")
	}
}

func TestWrap_RebasesOffsetImages(t *testing.T) {
	sub := gradient(10, 10).SubImage(image.Rect(2, 2, 6, 6)).(*image.NRGBA)
	img := Wrap(sub)
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("bounds: got %v", img.Bounds())
	}
}

func TestResize(t *testing.T) {
	img := FromImage(gradient(100, 50))
	r := img.Resize(30, 70)
	if r.Width() != 30 || r.Height() != 70 {
		t.Errorf("size: got %dx%d", r.Width(), r.Height())
	}
	if same := img.Resize(100, 50); same != img {
		t.Error("resize to identical size should return the receiver")
	}
}
