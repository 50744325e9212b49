// Package raster holds the immutable pixel buffer shared by every
// composition stage.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when a source photo or custom frame cannot be decoded.
var ErrDecode = errors.New("decode failed")

// Image is an RGBA8 raster anchored at (0,0). It is never mutated after
// construction: stages draw on a Canvas copy and Wrap the result.
type Image struct {
	pix *image.NRGBA
}

// Decode decodes any registered format (jpeg, png, gif, bmp, tiff, webp).
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: zero-sized image", ErrDecode)
	}
	return FromImage(img), nil
}

// FromImage copies img into a new raster.
func FromImage(img image.Image) *Image {
	return &Image{pix: imaging.Clone(img)}
}

// Wrap takes ownership of pix. The caller must not write to it afterwards.
func Wrap(pix *image.NRGBA) *Image {
	if pix.Rect.Min != (image.Point{}) {
		pix = imaging.Clone(pix)
	}
	return &Image{pix: pix}
}

func (m *Image) Width() int  { return m.pix.Rect.Dx() }
func (m *Image) Height() int { return m.pix.Rect.Dy() }

// Bounds is always anchored at the origin.
func (m *Image) Bounds() image.Rectangle { return m.pix.Rect }

// NRGBAAt returns the pixel at (x, y).
func (m *Image) NRGBAAt(x, y int) color.NRGBA { return m.pix.NRGBAAt(x, y) }

// Image exposes the buffer as a read-only image.Image.
func (m *Image) Image() image.Image { return m.pix }

// Canvas returns a writable copy of the pixels.
func (m *Image) Canvas() *image.NRGBA {
	dst := image.NewNRGBA(m.pix.Rect)
	copy(dst.Pix, m.pix.Pix)
	return dst
}

// Resize returns a copy stretched to w x h, ignoring aspect ratio.
func (m *Image) Resize(w, h int) *Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == m.Width() && h == m.Height() {
		return m
	}
	return &Image{pix: imaging.Resize(m.pix, w, h, imaging.Linear)}
}

// MinDim returns min(width, height).
func (m *Image) MinDim() int {
	return min(m.Width(), m.Height())
}

// MaxDim returns max(width, height).
func (m *Image) MaxDim() int {
	return max(m.Width(), m.Height())
}
