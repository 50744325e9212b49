// Package sticker draws the greeting text overlays.
package sticker

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Font describes the nominal font of a sticker. BaseSize is in pixels for
// a 1080px short edge and is scaled to the canvas at render time.
type Font struct {
	Weight   int
	BaseSize float64
	Family   string
}

// Sticker is a text overlay. The zero value is "no sticker".
type Sticker struct {
	Name  string
	Label string
	Text  string
	Color color.NRGBA
	Font  Font
}

// IsNone reports whether s draws nothing.
func (s Sticker) IsNone() bool {
	return s.Name == "" || s.Name == "none" || s.Text == ""
}

func (s Sticker) String() string {
	if s.IsNone() {
		return "none"
	}
	return s.Name
}

var catalog = []Sticker{
	{Name: "bom-dia", Label: "Bom Dia", Text: "Bom dia!", Color: mustHex("#FFFFFF"), Font: Font{700, 80, "Dancing Script"}},
	{Name: "boa-tarde", Label: "Boa Tarde", Text: "Boa tarde", Color: mustHex("#FFFFFF"), Font: Font{700, 80, "Playfair Display"}},
	{Name: "boa-noite", Label: "Boa Noite", Text: "Boa noite", Color: mustHex("#fbbf24"), Font: Font{700, 80, "Dancing Script"}},
	{Name: "gratidao", Label: "Gratidão", Text: "Gratidão", Color: mustHex("#FFFFFF"), Font: Font{500, 60, "Inter"}},
	{Name: "felicidade", Label: "Felicidade", Text: "Momentos Felizes", Color: mustHex("#f472b6"), Font: Font{700, 60, "Dancing Script"}},
}

// Catalog returns the built-in stickers.
func Catalog() []Sticker {
	out := make([]Sticker, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a built-in sticker by name. "none" and "" resolve to the
// zero Sticker.
func Lookup(name string) (Sticker, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return Sticker{}, true
	}
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Sticker{}, false
}

// ParseHexColor parses #rgb, #rrggbb and #rrggbbaa.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
