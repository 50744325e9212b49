// Package encoder turns a finished composition into file bytes.
package encoder

import (
	"errors"
	"image"
)

// ErrEncode is returned for unsupported targets and encoder failures.
var ErrEncode = errors.New("encode failed")

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "png").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string

	// MIMEType is handed to export targets.
	MIMEType() string
}
