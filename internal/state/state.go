// Package state holds the composition parameters and the pinned default
// frame preference.
package state

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/frame"
	"github.com/AnyUserName/momento-cli/internal/prefs"
	"github.com/AnyUserName/momento-cli/internal/sticker"
)

// PinnedFrameKey is the preference key of the pinned default frame.
const PinnedFrameKey = "instafiltros_default_frame"

// ErrInvalidPinTarget is returned when pinning a Custom frame.
var ErrInvalidPinTarget = errors.New("custom frames cannot be pinned as default")

// State is the full set of user choices for one render. It is a value:
// copies are independent and a render keeps the copy it was given.
type State struct {
	Filter  filter.Filter
	Frame   frame.Frame
	Sticker sticker.Sticker
}

func (s State) String() string {
	return fmt.Sprintf("filter=%s frame=%s sticker=%s", s.Filter, s.Frame, s.Sticker)
}

// WithFilter returns a copy of s with f selected.
func (s State) WithFilter(f filter.Filter) State {
	s.Filter = f
	return s
}

// WithFrame returns a copy of s with fr selected.
func (s State) WithFrame(fr frame.Frame) State {
	s.Frame = fr
	return s
}

// WithSticker returns a copy of s with st selected.
func (s State) WithSticker(st sticker.Sticker) State {
	s.Sticker = st
	return s
}

// Pins manages the pinned default frame.
type Pins struct {
	Store prefs.Store
}

// Pinned returns the pinned frame kind, if any. Stored values that are not
// a known built-in frame are ignored.
func (p Pins) Pinned() (frame.Kind, bool, error) {
	v, ok, err := p.Store.Get(PinnedFrameKey)
	if err != nil || !ok {
		return frame.None, false, err
	}
	k, known := frame.ParseKind(v)
	if !known || k == frame.Custom {
		return frame.None, false, nil
	}
	return k, true, nil
}

// Toggle pins fr, or clears the pin when fr is already pinned. It reports
// whether fr is pinned afterwards. Custom frames are rejected and the
// stored pin is left untouched.
func (p Pins) Toggle(fr frame.Frame) (bool, error) {
	if fr.Kind() == frame.Custom {
		return false, ErrInvalidPinTarget
	}
	cur, ok, err := p.Store.Get(PinnedFrameKey)
	if err != nil {
		return false, err
	}
	name := fr.Kind().String()
	if ok && cur == name {
		return false, p.Store.Delete(PinnedFrameKey)
	}
	return true, p.Store.Set(PinnedFrameKey, name)
}

// Seed returns the initial state of a new editing session.
func (p Pins) Seed() (State, error) {
	k, ok, err := p.Pinned()
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{}, nil
	}
	return State{Frame: frame.Of(k)}, nil
}
