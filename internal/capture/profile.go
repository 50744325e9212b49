// Package capture prepares a camera still for editing: it crops to the
// chosen aspect ratio at the capture resolution, mirrors front-camera
// shots and optionally applies the beauty filter.
package capture

import (
	"fmt"
	"strings"
)

// Profile is a capture target.
type Profile struct {
	Aspect string // "9:16" or "16:9"
	Width  int
	Height int
}

var profiles = map[string]Profile{
	"9:16": {Aspect: "9:16", Width: 1080, Height: 1920},
	"16:9": {Aspect: "16:9", Width: 1920, Height: 1080},
}

// DefaultAspect is used when no aspect ratio is requested.
const DefaultAspect = "9:16"

// Aspects lists the supported aspect ratios.
func Aspects() []string {
	return []string{"9:16", "16:9"}
}

// ParseAspect returns the profile for an aspect tag. "portrait" and
// "landscape" are accepted as well.
func ParseAspect(tag string) (Profile, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch tag {
	case "", "portrait":
		tag = DefaultAspect
	case "landscape":
		tag = "16:9"
	}
	p, ok := profiles[tag]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported aspect ratio %q (want one of %s)",
			tag, strings.Join(Aspects(), ", "))
	}
	return p, nil
}

// Ratio returns width / height.
func (p Profile) Ratio() float64 {
	return float64(p.Width) / float64(p.Height)
}

// Scaled returns the profile with its long edge limited to maxEdge,
// keeping the aspect ratio. Non-positive maxEdge returns p unchanged.
func (p Profile) Scaled(maxEdge int) Profile {
	long := max(p.Width, p.Height)
	if maxEdge <= 0 || maxEdge >= long {
		return p
	}
	p.Width = max(1, p.Width*maxEdge/long)
	p.Height = max(1, p.Height*maxEdge/long)
	return p
}
