package capture

import (
	"fmt"
	"image"

	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/disintegration/imaging"
)

// Options controls how a still is prepared.
type Options struct {
	Aspect  string
	Mirror  bool // front camera: flip horizontally
	Beauty  bool
	MaxEdge int // optional cap on the long edge
}

// Still is a prepared capture: the photo plus the aspect tag recorded
// alongside it in the gallery.
type Still struct {
	Image  *raster.Image
	Aspect string
}

// Frame crops img to fill the requested aspect ratio (centered, cover
// semantics), resizes it to the capture resolution and applies the
// mirror and beauty options.
func Frame(img image.Image, opts Options) (Still, error) {
	if img == nil || img.Bounds().Empty() {
		return Still{}, fmt.Errorf("capture: %w: empty frame", raster.ErrDecode)
	}
	prof, err := ParseAspect(opts.Aspect)
	if err != nil {
		return Still{}, err
	}
	prof = prof.Scaled(opts.MaxEdge)

	out := imaging.Fill(img, prof.Width, prof.Height, imaging.Center, imaging.Lanczos)
	if opts.Mirror {
		out = imaging.FlipH(out)
	}
	still := raster.Wrap(out)
	if opts.Beauty {
		still = filter.Beauty.Apply(still)
	}
	return Still{Image: still, Aspect: prof.Aspect}, nil
}
