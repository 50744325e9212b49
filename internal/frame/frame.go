// Package frame draws the decorative frame variants over a filtered photo.
//
// Every variant is applied through the same Pending contract: the built-in
// frames resolve immediately, while a Custom frame resolves once its
// user-supplied image has been decoded in the background.
package frame

import (
	"strings"
)

// Kind enumerates the frame variants.
type Kind int

const (
	None Kind = iota
	WhiteBorder
	Polaroid
	Cinema
	Vignette
	Custom
)

var names = [...]string{
	None:        "none",
	WhiteBorder: "white-border",
	Polaroid:    "polaroid",
	Cinema:      "cinema",
	Vignette:    "vignette",
	Custom:      "custom",
}

var labels = [...]string{
	None:        "Sem Moldura",
	WhiteBorder: "Borda Branca",
	Polaroid:    "Polaroid",
	Cinema:      "Cinema",
	Vignette:    "Vinheta",
	Custom:      "Sua Moldura",
}

// Kinds returns every variant in display order.
func Kinds() []Kind {
	return []Kind{None, Custom, WhiteBorder, Polaroid, Cinema, Vignette}
}

func (k Kind) String() string {
	if k < None || k > Custom {
		return names[None]
	}
	return names[k]
}

func (k Kind) Label() string {
	if k < None || k > Custom {
		return labels[None]
	}
	return labels[k]
}

// ParseKind maps a frame name to its Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Kind(i), true
		}
	}
	return None, false
}

// Frame is a frame selection. Only Custom carries data: the encoded bytes
// of the user's frame image.
type Frame struct {
	kind   Kind
	custom []byte
}

// Of returns a built-in frame. Custom frames must be built with NewCustom;
// Of(Custom) yields a Custom frame without payload, which fails to decode.
func Of(k Kind) Frame {
	return Frame{kind: k}
}

// NewCustom returns a Custom frame holding a private copy of data.
func NewCustom(data []byte) Frame {
	buf := make([]byte, len(data))
	copy(buf, data)
	return Frame{kind: Custom, custom: buf}
}

func (f Frame) Kind() Kind     { return f.kind }
func (f Frame) String() string { return f.kind.String() }

// Payload returns a copy of the custom frame bytes (nil for built-ins).
func (f Frame) Payload() []byte {
	if f.custom == nil {
		return nil
	}
	buf := make([]byte, len(f.custom))
	copy(buf, f.custom)
	return buf
}
