package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/frame"
	"github.com/AnyUserName/momento-cli/internal/state"
	"github.com/AnyUserName/momento-cli/internal/sticker"
	"github.com/spf13/cobra"
)

// composeFlags are the state selectors shared by render and batch.
type composeFlags struct {
	filter    string
	frame     string
	frameFile string
	sticker   string
}

func (f *composeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "none", "color filter (see `momento filters`)")
	cmd.Flags().StringVar(&f.frame, "frame", "", "frame: none, white-border, polaroid, cinema, vignette (default: pinned frame)")
	cmd.Flags().StringVar(&f.frameFile, "frame-file", "", "custom frame image, stretched over the photo")
	cmd.Flags().StringVarP(&f.sticker, "sticker", "s", "none", "greeting sticker")
}

// resolve builds the state: the pinned frame seeds it, explicit flags win.
func (f *composeFlags) resolve() (state.State, error) {
	st, err := pins().Seed()
	if err != nil {
		return state.State{}, fmt.Errorf("read pinned frame: %w", err)
	}
	if k, ok, _ := pins().Pinned(); ok && f.frame == "" && f.frameFile == "" {
		logVerbose("using pinned frame %s", k)
	}

	name := strings.ToLower(strings.TrimSpace(f.filter))
	flt := filter.Parse(name)
	if flt == filter.None && name != "" && name != "none" {
		return state.State{}, fmt.Errorf("unknown filter %q", f.filter)
	}
	st = st.WithFilter(flt)

	switch {
	case f.frameFile != "":
		data, err := os.ReadFile(f.frameFile)
		if err != nil {
			return state.State{}, fmt.Errorf("read frame file: %w", err)
		}
		st = st.WithFrame(frame.NewCustom(data))
	case f.frame != "":
		k, ok := frame.ParseKind(f.frame)
		if !ok {
			return state.State{}, fmt.Errorf("unknown frame %q", f.frame)
		}
		if k == frame.Custom {
			return state.State{}, fmt.Errorf("frame %q needs --frame-file", f.frame)
		}
		st = st.WithFrame(frame.Of(k))
	}

	stk, ok := sticker.Lookup(f.sticker)
	if !ok {
		return state.State{}, fmt.Errorf("unknown sticker %q", f.sticker)
	}
	return st.WithSticker(stk), nil
}
