package sticker

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/AnyUserName/momento-cli/internal/frame"
	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// PolaroidText is the ink color used on the Polaroid paper strip.
var PolaroidText = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

// Renderer draws stickers onto a canvas.
type Renderer struct {
	Fonts *Fonts
}

// Scale returns the resolution factor min(w,h)/1080.
func Scale(w, h int) float64 {
	return float64(min(w, h)) / 1080
}

// Apply draws st centered on a copy of canvas. Placement and shadow depend
// on the frame the canvas was drawn with.
func (r *Renderer) Apply(canvas *raster.Image, st Sticker, fr frame.Kind) (*raster.Image, error) {
	if st.IsNone() {
		return canvas, nil
	}
	fonts := r.Fonts
	if fonts == nil {
		fonts = &Fonts{}
	}

	w, h := canvas.Width(), canvas.Height()
	s := Scale(w, h)
	size := math.Max(st.Font.BaseSize*s, 1)

	face, err := fonts.Face(st.Font.Family, size)
	if err != nil {
		return nil, fmt.Errorf("sticker %s: %w", st.Name, err)
	}
	defer face.Close()

	ink := st.Color
	cy := 0.85 * float64(h)
	shadow := true
	if fr == frame.Polaroid {
		ink = PolaroidText
		cy = 0.92 * float64(h)
		shadow = false
	}

	// Horizontally centered, vertically on the middle of the em box.
	m := face.Metrics()
	adv := font.MeasureString(face, st.Text)
	x := float64(w)/2 - fixedToFloat(adv)/2
	y := cy + fixedToFloat(m.Ascent-m.Descent)/2

	dst := canvas.Canvas()
	if shadow {
		dst = drawShadow(dst, face, st.Text, x+2*s, y+2*s, 5*s)
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  floatPoint(x, y),
	}
	d.DrawString(st.Text)
	return raster.Wrap(dst), nil
}

// drawShadow renders text in black on a transparent layer around its ink
// bounds, blurs it and composites it at 50% opacity.
func drawShadow(dst *image.NRGBA, face font.Face, text string, x, y, sigma float64) *image.NRGBA {
	bounds, _ := font.BoundString(face, text)
	pad := int(math.Ceil(3*sigma)) + 1
	rect := image.Rect(
		int(math.Floor(x+fixedToFloat(bounds.Min.X)))-pad,
		int(math.Floor(y+fixedToFloat(bounds.Min.Y)))-pad,
		int(math.Ceil(x+fixedToFloat(bounds.Max.X)))+pad,
		int(math.Ceil(y+fixedToFloat(bounds.Max.Y)))+pad,
	).Intersect(dst.Rect)
	if rect.Empty() {
		return dst
	}

	layer := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	d := font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(color.NRGBA{A: 255}),
		Face: face,
		Dot:  floatPoint(x-float64(rect.Min.X), y-float64(rect.Min.Y)),
	}
	d.DrawString(text)

	blurred := layer
	if sigma > 0 {
		blurred = imaging.Blur(layer, sigma)
	}
	return imaging.Overlay(dst, blurred, rect.Min, 0.5)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}
