package filter

import (
	"math"

	"github.com/AnyUserName/momento-cli/internal/raster"
)

// RGB is a color with channels in [0,1].
type RGB struct {
	R, G, B float64
}

func (c RGB) clamp() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func (c RGB) luma() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Op is a single color primitive. Every Op clamps its output.
type Op func(RGB) RGB

// Chain is an ordered list of primitives; later ops see earlier output.
type Chain []Op

// Apply returns a new raster with the chain applied to every pixel.
// Alpha is preserved. An empty chain returns src unchanged.
func (ch Chain) Apply(src *raster.Image) *raster.Image {
	if len(ch) == 0 {
		return src
	}
	dst := src.Canvas()
	pix := dst.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		c := RGB{
			R: float64(pix[i]) / 255,
			G: float64(pix[i+1]) / 255,
			B: float64(pix[i+2]) / 255,
		}
		for _, op := range ch {
			c = op(c)
		}
		pix[i] = to8(c.R)
		pix[i+1] = to8(c.G)
		pix[i+2] = to8(c.B)
	}
	return raster.Wrap(dst)
}

// Contrast scales each channel away from mid-gray.
func Contrast(k float64) Op {
	return func(c RGB) RGB {
		return RGB{(c.R-0.5)*k + 0.5, (c.G-0.5)*k + 0.5, (c.B-0.5)*k + 0.5}.clamp()
	}
}

// Brightness multiplies each channel.
func Brightness(k float64) Op {
	return func(c RGB) RGB {
		return RGB{c.R * k, c.G * k, c.B * k}.clamp()
	}
}

// Saturate moves each channel away from (k>1) or toward (k<1) the pixel luma.
func Saturate(k float64) Op {
	return func(c RGB) RGB {
		l := c.luma()
		return RGB{l + (c.R-l)*k, l + (c.G-l)*k, l + (c.B-l)*k}.clamp()
	}
}

// SepiaTone blends the pixel with its sepia matrix transform by k.
func SepiaTone(k float64) Op {
	return func(c RGB) RGB {
		s := RGB{
			R: 0.393*c.R + 0.769*c.G + 0.189*c.B,
			G: 0.349*c.R + 0.686*c.G + 0.168*c.B,
			B: 0.272*c.R + 0.534*c.G + 0.131*c.B,
		}
		return mix(c, s, k).clamp()
	}
}

// Gray blends the pixel with its luma by k.
func Gray(k float64) Op {
	return func(c RGB) RGB {
		l := c.luma()
		return mix(c, RGB{l, l, l}, k).clamp()
	}
}

// HueRotate rotates the hue by deg degrees in HSL space, keeping
// saturation and lightness.
func HueRotate(deg float64) Op {
	return func(c RGB) RGB {
		h, s, l := toHSL(c)
		h = math.Mod(h+deg, 360)
		if h < 0 {
			h += 360
		}
		return fromHSL(h, s, l).clamp()
	}
}

func mix(a, b RGB, k float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*k,
		G: a.G + (b.G-a.G)*k,
		B: a.B + (b.B-a.B)*k,
	}
}

// toHSL returns hue in degrees [0,360), saturation and lightness in [0,1].
func toHSL(c RGB) (h, s, l float64) {
	hi := math.Max(c.R, math.Max(c.G, c.B))
	lo := math.Min(c.R, math.Min(c.G, c.B))
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}
	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}
	switch hi {
	case c.R:
		h = (c.G - c.B) / d
		if c.G < c.B {
			h += 6
		}
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	return h * 60, s, l
}

func fromHSL(h, s, l float64) RGB {
	if s == 0 {
		return RGB{l, l, l}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	h /= 360
	return RGB{
		R: hueToChannel(p, q, h+1.0/3),
		G: hueToChannel(p, q, h),
		B: hueToChannel(p, q, h-1.0/3),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
