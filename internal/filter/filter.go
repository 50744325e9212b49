// Package filter implements the named color filters as ordered chains of
// per-pixel primitives operating on normalized [0,1] channels.
package filter

import (
	"strings"

	"github.com/AnyUserName/momento-cli/internal/raster"
)

// Filter is one of the fixed, user-selectable color filters.
type Filter int

const (
	None Filter = iota
	Vivid
	Warm
	Cool
	Sepia
	Grayscale
	Vintage
)

var names = [...]string{
	None:      "none",
	Vivid:     "vivid",
	Warm:      "warm",
	Cool:      "cool",
	Sepia:     "sepia",
	Grayscale: "grayscale",
	Vintage:   "vintage",
}

var labels = [...]string{
	None:      "Normal",
	Vivid:     "Vívido",
	Warm:      "Quente",
	Cool:      "Frio",
	Sepia:     "Sépia",
	Grayscale: "P&B",
	Vintage:   "Retrô",
}

// All returns every filter in display order.
func All() []Filter {
	return []Filter{None, Vivid, Warm, Cool, Sepia, Grayscale, Vintage}
}

func (f Filter) String() string {
	if f < None || f > Vintage {
		return names[None]
	}
	return names[f]
}

// Label is the user-facing name of the filter.
func (f Filter) Label() string {
	if f < None || f > Vintage {
		return labels[None]
	}
	return labels[f]
}

// Parse maps a filter name to a Filter. Unknown names fall back to None.
// "contrast" is accepted as an alias of vivid.
func Parse(name string) Filter {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "contrast" {
		return Vivid
	}
	for i, n := range names {
		if n == name {
			return Filter(i)
		}
	}
	return None
}

// ChainOf returns the primitive chain for f. None yields an empty chain.
func ChainOf(f Filter) Chain {
	switch f {
	case Vivid:
		return Chain{Contrast(1.2), Saturate(1.2)}
	case Warm:
		return Chain{SepiaTone(0.3), HueRotate(-10), Saturate(1.2)}
	case Cool:
		return Chain{HueRotate(10), Brightness(1.1)}
	case Sepia:
		return Chain{SepiaTone(1)}
	case Grayscale:
		return Chain{Gray(1)}
	case Vintage:
		return Chain{SepiaTone(0.5), Contrast(1.1), Brightness(0.9)}
	default:
		return nil
	}
}

// Beauty is the soft skin-tone correction applied at capture time.
var Beauty = Chain{Contrast(0.98), Brightness(1.04), Saturate(1.04), SepiaTone(0.02)}

// Apply runs the chain for f over src. None returns src itself.
func Apply(src *raster.Image, f Filter) *raster.Image {
	return ChainOf(f).Apply(src)
}
