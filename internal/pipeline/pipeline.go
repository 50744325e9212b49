// Package pipeline composes a photo, a filter, a frame and a sticker into
// one encoded image.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AnyUserName/momento-cli/internal/encoder"
	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/frame"
	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/AnyUserName/momento-cli/internal/state"
	"github.com/AnyUserName/momento-cli/internal/sticker"
)

// Config holds the parameters shared by every render.
type Config struct {
	Format  string // output format, "jpeg" unless set
	Quality int    // 1-100, encoder.DefaultQuality unless set
	Fonts   *sticker.Fonts
	Verbose bool

	// DecodeFrame decodes custom frame bytes; nil means raster.Decode.
	DecodeFrame frame.Decoder
}

// EncodedImage is the terminal output of a render. The caller owns Data.
type EncodedImage struct {
	Data      []byte
	Format    string
	MIMEType  string
	Extension string
	Width     int
	Height    int
}

// Pipeline runs the composition stages. It holds no per-render state and
// is safe for concurrent use.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	geometry frame.Geometry
	stickers *sticker.Renderer
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Format == "" {
		cfg.Format = "jpeg"
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = encoder.DefaultQuality
	}
	if cfg.Fonts == nil {
		cfg.Fonts = &sticker.Fonts{}
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		geometry: frame.Geometry{Decode: cfg.DecodeFrame},
		stickers: &sticker.Renderer{Fonts: cfg.Fonts},
	}
}

// Registry exposes the encoders, e.g. to register extra formats.
func (p *Pipeline) Registry() *encoder.Registry { return p.registry }

// ComposeBytes decodes data and composes it.
func (p *Pipeline) ComposeBytes(ctx context.Context, data []byte, st state.State) (EncodedImage, error) {
	src, err := raster.Decode(data)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("source: %w", err)
	}
	return p.Compose(ctx, src, st)
}

// Compose renders st over src on a fresh canvas.
func (p *Pipeline) Compose(ctx context.Context, src *raster.Image, st state.State) (EncodedImage, error) {
	return p.compose(ctx, src, st, nil)
}

// compose runs the stages in order. checkpoint, when set, is consulted
// after the frame stage resolves; a non-nil result aborts the render.
func (p *Pipeline) compose(ctx context.Context, src *raster.Image, st state.State, checkpoint func() error) (EncodedImage, error) {
	start := time.Now()

	// Stage 1: validate source.
	if src == nil || src.Bounds().Empty() {
		return EncodedImage{}, fmt.Errorf("source: %w: empty raster", raster.ErrDecode)
	}

	// Stage 2: color filter.
	filtered := filter.Apply(src, st.Filter)

	// Stage 3: frame. Custom frames resolve asynchronously; nothing below
	// runs until the pending result is available.
	framed, err := p.geometry.Apply(ctx, src, filtered, st.Frame, st.Filter).Wait(ctx)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("frame %s: %w", st.Frame, err)
	}
	if checkpoint != nil {
		if err := checkpoint(); err != nil {
			return EncodedImage{}, err
		}
	}

	// Stage 4: sticker.
	composed, err := p.stickers.Apply(framed, st.Sticker, st.Frame.Kind())
	if err != nil {
		return EncodedImage{}, err
	}

	// Stage 5: encode.
	data, enc, err := p.registry.Encode(p.cfg.Format, composed.Image(), p.cfg.Quality)
	if err != nil {
		return EncodedImage{}, err
	}

	p.logf("composed %dx%d %s -> %d bytes %s in %s",
		src.Width(), src.Height(), st, len(data), enc.Format(), time.Since(start).Round(time.Millisecond))

	return EncodedImage{
		Data:      data,
		Format:    enc.Format(),
		MIMEType:  enc.MIMEType(),
		Extension: enc.Extension(),
		Width:     composed.Width(),
		Height:    composed.Height(),
	}, nil
}

// logf prints a message only in verbose mode.
func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[momento] "+format+"\n", args...)
	}
}
