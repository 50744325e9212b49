package frame

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/disintegration/imaging"
)

// PolaroidBackground is the paper color behind a Polaroid frame (#f8f9fa).
var PolaroidBackground = color.NRGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}

// Decoder turns custom frame bytes into a raster. Errors should wrap
// raster.ErrDecode.
type Decoder func(data []byte) (*raster.Image, error)

// Geometry applies frames. The zero value decodes custom frames with
// raster.Decode.
type Geometry struct {
	Decode Decoder
}

// Apply draws fr over filtered with the package defaults.
func Apply(ctx context.Context, base, filtered *raster.Image, fr Frame, flt filter.Filter) *Pending {
	return Geometry{}.Apply(ctx, base, filtered, fr, flt)
}

// Apply draws fr over filtered. base is the unfiltered source, needed by
// Polaroid which redraws it at a smaller size and filters it again with flt.
func (g Geometry) Apply(ctx context.Context, base, filtered *raster.Image, fr Frame, flt filter.Filter) *Pending {
	switch fr.kind {
	case WhiteBorder:
		return Resolved(whiteBorder(filtered), nil)
	case Polaroid:
		return Resolved(polaroid(base, filtered, flt), nil)
	case Cinema:
		return Resolved(cinema(filtered), nil)
	case Vignette:
		return Resolved(vignette(filtered), nil)
	case Custom:
		return g.custom(ctx, filtered, fr.custom)
	default:
		return Resolved(filtered, nil)
	}
}

func (g Geometry) custom(ctx context.Context, filtered *raster.Image, data []byte) *Pending {
	decode := g.Decode
	if decode == nil {
		decode = raster.Decode
	}
	p := newPending()
	go func() {
		overlay, err := decode(data)
		if err != nil {
			p.resolve(nil, fmt.Errorf("custom frame: %w", err))
			return
		}
		if err := ctx.Err(); err != nil {
			p.resolve(nil, err)
			return
		}
		stretched := overlay.Resize(filtered.Width(), filtered.Height())
		out := imaging.Overlay(filtered.Image(), stretched.Image(), image.Pt(0, 0), 1.0)
		p.resolve(raster.Wrap(out), nil)
	}()
	return p
}

// relative returns round(f * v).
func relative(f float64, v int) int {
	return int(math.Round(f * float64(v)))
}

func whiteBorder(src *raster.Image) *raster.Image {
	w, h := src.Width(), src.Height()
	t := relative(0.05, src.MinDim())
	if t <= 0 {
		return src
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	canvas := src.Canvas()
	canvas = imaging.Paste(canvas, imaging.New(w, t, white), image.Pt(0, 0))
	canvas = imaging.Paste(canvas, imaging.New(w, t, white), image.Pt(0, h-t))
	canvas = imaging.Paste(canvas, imaging.New(t, h, white), image.Pt(0, 0))
	canvas = imaging.Paste(canvas, imaging.New(t, h, white), image.Pt(w-t, 0))
	return raster.Wrap(canvas)
}

func polaroid(base, filtered *raster.Image, flt filter.Filter) *raster.Image {
	w, h := filtered.Width(), filtered.Height()
	padding := relative(0.05, filtered.MinDim())
	bottom := relative(0.2, filtered.MinDim())
	innerW := w - 2*padding
	innerH := h - padding - bottom

	canvas := imaging.New(w, h, PolaroidBackground)
	if innerW <= 0 || innerH <= 0 {
		return raster.Wrap(canvas)
	}
	inner := filter.Apply(base.Resize(innerW, innerH), flt)
	return raster.Wrap(imaging.Paste(canvas, inner.Image(), image.Pt(padding, padding)))
}

func cinema(src *raster.Image) *raster.Image {
	w, h := src.Width(), src.Height()
	bar := relative(0.1, h)
	if bar <= 0 {
		return src
	}
	black := color.NRGBA{A: 255}
	canvas := src.Canvas()
	canvas = imaging.Paste(canvas, imaging.New(w, bar, black), image.Pt(0, 0))
	canvas = imaging.Paste(canvas, imaging.New(w, bar, black), image.Pt(0, h-bar))
	return raster.Wrap(canvas)
}

// vignette blends black over the image with an alpha that grows linearly
// from 0 at min(w,h)/3 to 0.7 at max(w,h)/1.2 from the center.
func vignette(src *raster.Image) *raster.Image {
	w, h := src.Width(), src.Height()
	cx, cy := float64(w)/2, float64(h)/2
	r0 := float64(src.MinDim()) / 3
	r1 := float64(src.MaxDim()) / 1.2
	span := r1 - r0

	canvas := src.Canvas()
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+w*4]
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			d := math.Sqrt(dx*dx + dy*dy)
			if d <= r0 {
				continue
			}
			t := 1.0
			if span > 0 && d < r1 {
				t = (d - r0) / span
			}
			overBlack(row[x*4:x*4+4], 0.7*t)
		}
	}
	return raster.Wrap(canvas)
}

// overBlack composites black with alpha a over one NRGBA pixel.
func overBlack(px []uint8, a float64) {
	da := float64(px[3]) / 255
	oa := a + da*(1-a)
	if oa <= 0 {
		return
	}
	k := da * (1 - a) / oa
	px[0] = uint8(float64(px[0])*k + 0.5)
	px[1] = uint8(float64(px[1])*k + 0.5)
	px[2] = uint8(float64(px[2])*k + 0.5)
	px[3] = uint8(oa*255 + 0.5)
}
