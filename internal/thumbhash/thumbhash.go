// Package thumbhash computes ThumbHash placeholders for gallery entries.
// The encoding follows Evan Wallace's reference implementation so the
// bytes can be decoded by any ThumbHash client.
package thumbhash

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

const maxThumbDim = 100

// Encode generates a ThumbHash from any image.Image. The image is first
// reduced to at most 100x100 pixels. Output is 5-25 bytes and
// deterministic for identical input.
func Encode(img image.Image) []byte {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	w, h := thumbDims(b.Dx(), b.Dy())
	small := imaging.Resize(img, w, h, imaging.Box)
	return encodeNRGBA(w, h, small.Pix, small.Stride)
}

func thumbDims(w, h int) (int, int) {
	if w <= maxThumbDim && h <= maxThumbDim {
		return w, h
	}
	if w >= h {
		return maxThumbDim, max(1, int(math.Round(float64(h)*maxThumbDim/float64(w))))
	}
	return max(1, int(math.Round(float64(w)*maxThumbDim/float64(h)))), maxThumbDim
}

func encodeNRGBA(w, h int, pix []uint8, stride int) []byte {
	n := w * h

	// Average color, weighted by alpha.
	var avgR, avgG, avgB, avgA float64
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			a := float64(row[x*4+3]) / 255
			avgR += a / 255 * float64(row[x*4])
			avgG += a / 255 * float64(row[x*4+1])
			avgB += a / 255 * float64(row[x*4+2])
			avgA += a
		}
	}
	if avgA > 0 {
		avgR /= avgA
		avgG /= avgA
		avgB /= avgA
	}

	hasAlpha := avgA < float64(n)
	lLimit := 7.0
	if hasAlpha {
		lLimit = 5
	}
	maxWH := float64(max(w, h))
	lx := max(1, int(math.Round(lLimit*float64(w)/maxWH)))
	ly := max(1, int(math.Round(lLimit*float64(h)/maxWH)))

	// RGBA -> LPQA, composited over the average color.
	l := make([]float64, n)
	p := make([]float64, n)
	q := make([]float64, n)
	a := make([]float64, n)
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			i := y*w + x
			alpha := float64(row[x*4+3]) / 255
			r := avgR*(1-alpha) + alpha/255*float64(row[x*4])
			g := avgG*(1-alpha) + alpha/255*float64(row[x*4+1])
			bl := avgB*(1-alpha) + alpha/255*float64(row[x*4+2])
			l[i] = (r + g + bl) / 3
			p[i] = (r+g)/2 - bl
			q[i] = r - g
			a[i] = alpha
		}
	}

	lDC, lAC, lScale := encodeChannel(l, w, h, max(3, lx), max(3, ly))
	pDC, pAC, pScale := encodeChannel(p, w, h, 3, 3)
	qDC, qAC, qScale := encodeChannel(q, w, h, 3, 3)
	var aDC, aScale float64
	var aAC []float64
	if hasAlpha {
		aDC, aAC, aScale = encodeChannel(a, w, h, 5, 5)
	}

	isLandscape := w > h
	header24 := uint32(math.Round(63*lDC)) |
		uint32(math.Round(31.5+31.5*pDC))<<6 |
		uint32(math.Round(31.5+31.5*qDC))<<12 |
		uint32(math.Round(31*lScale))<<18 |
		boolBit(hasAlpha)<<23
	dim := lx
	if isLandscape {
		dim = ly
	}
	header16 := uint16(dim) |
		uint16(math.Round(63*pScale))<<3 |
		uint16(math.Round(63*qScale))<<9 |
		uint16(boolBit(isLandscape))<<15

	hash := []byte{
		byte(header24), byte(header24 >> 8), byte(header24 >> 16),
		byte(header16), byte(header16 >> 8),
	}
	if hasAlpha {
		hash = append(hash, byte(math.Round(15*aDC))|byte(math.Round(15*aScale))<<4)
	}

	channels := [][]float64{lAC, pAC, qAC}
	if hasAlpha {
		channels = append(channels, aAC)
	}
	acStart := len(hash)
	idx := 0
	for _, ac := range channels {
		for _, f := range ac {
			pos := acStart + idx>>1
			for len(hash) <= pos {
				hash = append(hash, 0)
			}
			hash[pos] |= byte(math.Round(15*f)) << ((idx & 1) << 2)
			idx++
		}
	}
	return hash
}

// encodeChannel returns the DC term, the AC terms normalized to [0,1] and
// the AC scale of one channel, using the triangular coefficient layout.
func encodeChannel(ch []float64, w, h, nx, ny int) (dc float64, ac []float64, scale float64) {
	fx := make([]float64, w)
	for cy := 0; cy < ny; cy++ {
		for cx := 0; cx*ny < nx*(ny-cy); cx++ {
			for x := 0; x < w; x++ {
				fx[x] = math.Cos(math.Pi / float64(w) * float64(cx) * (float64(x) + 0.5))
			}
			var f float64
			for y := 0; y < h; y++ {
				fy := math.Cos(math.Pi / float64(h) * float64(cy) * (float64(y) + 0.5))
				row := ch[y*w : y*w+w]
				for x, v := range row {
					f += v * fx[x] * fy
				}
			}
			f /= float64(w * h)
			if cx == 0 && cy == 0 {
				dc = f
				continue
			}
			ac = append(ac, f)
			scale = math.Max(scale, math.Abs(f))
		}
	}
	if scale > 0 {
		for i := range ac {
			ac[i] = 0.5 + 0.5/scale*ac[i]
		}
	}
	return dc, ac, scale
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// HasAlpha reports whether any pixel is not fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		b := src.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
			for i := 3; i < len(row); i += 4 {
				if row[i] != 255 {
					return true
				}
			}
		}
		return false
	case *image.YCbCr, *image.Gray:
		return false
	default:
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
					return true
				}
			}
		}
		return false
	}
}
