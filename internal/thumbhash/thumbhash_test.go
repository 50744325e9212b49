package thumbhash

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255,
			})
		}
	}
	return img
}

func TestEncode_Deterministic(t *testing.T) {
	img := gradient(320, 180)
	h1 := Encode(img)
	h2 := Encode(img)
	if len(h1) == 0 {
		t.Fatal("empty hash")
	}
	if !bytes.Equal(h1, h2) {
		t.Fatalf("hashes differ: %x vs %x", h1, h2)
	}
}

func TestEncode_SizeRange(t *testing.T) {
	for _, img := range []image.Image{gradient(64, 48), gradient(1080, 1920), gradient(3, 3)} {
		hash := Encode(img)
		if len(hash) < 5 || len(hash) > 25 {
			t.Errorf("%v: unexpected hash size %d", img.Bounds(), len(hash))
		}
	}
}

func TestEncode_OrientationBit(t *testing.T) {
	wide := Encode(gradient(200, 100))
	tall := Encode(gradient(100, 200))
	if wide[4]&0x80 == 0 {
		t.Error("landscape bit not set for wide image")
	}
	if tall[4]&0x80 != 0 {
		t.Error("landscape bit set for tall image")
	}
}

func TestEncode_AlphaFlag(t *testing.T) {
	img := gradient(32, 32)
	if Encode(img)[2]&0x80 != 0 {
		t.Error("opaque image flagged as alpha")
	}
	for i := 3; i < len(img.Pix); i += 8 {
		img.Pix[i] = 0
	}
	if Encode(img)[2]&0x80 == 0 {
		t.Error("transparent image not flagged")
	}
}

func TestEncode_Empty(t *testing.T) {
	if Encode(image.NewNRGBA(image.Rect(0, 0, 0, 0))) != nil {
		t.Error("expected nil hash for empty image")
	}
}

func TestThumbDims(t *testing.T) {
	cases := []struct{ w, h, ww, wh int }{
		{50, 40, 50, 40},
		{1920, 1080, 100, 56},
		{1080, 1920, 56, 100},
		{5000, 10, 100, 1},
	}
	for _, c := range cases {
		w, h := thumbDims(c.w, c.h)
		if w != c.ww || h != c.wh {
			t.Errorf("thumbDims(%d,%d) = %d,%d; want %d,%d", c.w, c.h, w, h, c.ww, c.wh)
		}
	}
}

func TestHasAlpha(t *testing.T) {
	img := gradient(4, 4)
	if HasAlpha(img) {
		t.Error("opaque image reported as having alpha")
	}
	img.SetNRGBA(1, 1, color.NRGBA{A: 128})
	if !HasAlpha(img) {
		t.Error("transparent pixel not detected")
	}
	if HasAlpha(image.NewYCbCr(image.Rect(0, 0, 8, 8), image.YCbCrSubsampleRatio420)) {
		t.Error("YCbCr should never report alpha")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if !HasAlpha(rgba) {
		t.Error("zeroed RGBA is fully transparent")
	}
}

func BenchmarkEncode(b *testing.B) {
	img := gradient(1080, 1920)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Encode(img)
	}
}
