package encoder

import (
	"fmt"
	"image"
	"strings"
)

// Registry maps format names to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with the built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{&JPEGEncoder{}, &PNGEncoder{}} {
		r.Register(enc)
	}
	return r
}

// Register adds or replaces the encoder for enc.Format().
func (r *Registry) Register(enc Encoder) {
	r.encoders[enc.Format()] = enc
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted for jpeg.
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "jpg" {
		format = "jpeg"
	}
	return r.encoders[format]
}

// Available returns all registered format names, jpeg first.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"jpeg", "png"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	for f := range r.encoders {
		if f != "jpeg" && f != "png" {
			result = append(result, f)
		}
	}
	return result
}

// Encode encodes img as format. Unknown formats and encoder failures are
// reported as ErrEncode.
func (r *Registry) Encode(format string, img image.Image, quality int) ([]byte, Encoder, error) {
	enc := r.Get(format)
	if enc == nil {
		return nil, nil, fmt.Errorf("%w: unsupported format %q", ErrEncode, format)
	}
	data, err := enc.Encode(img, quality)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrEncode, enc.Format(), err)
	}
	return data, enc, nil
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
