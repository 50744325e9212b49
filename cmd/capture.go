package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/AnyUserName/momento-cli/internal/capture"
	"github.com/AnyUserName/momento-cli/internal/export"
	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/AnyUserName/momento-cli/internal/state"
	"github.com/AnyUserName/momento-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	captureAspect  string
	captureMirror  bool
	captureBeauty  bool
	captureMaxEdge int
	captureOutDir  string
	captureSave    bool
)

var captureCmd = &cobra.Command{
	Use:   "capture <camera_frame>",
	Short: "Prepare a camera frame as a still (crop, mirror, beauty)",
	Long: `Crops a raw camera frame to 9:16 or 16:9 at capture resolution, optionally
mirrors it (front camera) and applies the beauty filter. The still is
exported as-is, ready to be rendered.`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().StringVarP(&captureAspect, "aspect", "a", capture.DefaultAspect, "aspect ratio: 9:16 (portrait) or 16:9 (landscape)")
	captureCmd.Flags().BoolVar(&captureMirror, "mirror", true, "mirror horizontally (front camera)")
	captureCmd.Flags().BoolVar(&captureBeauty, "beauty", false, "apply the beauty filter")
	captureCmd.Flags().IntVar(&captureMaxEdge, "max-edge", 0, "cap the long edge in pixels (0 = full resolution)")
	captureCmd.Flags().StringVarP(&captureOutDir, "out", "o", "", "output directory (default from config)")
	captureCmd.Flags().BoolVar(&captureSave, "save", false, "also save to the gallery")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	src, err := raster.Decode(data)
	if err != nil {
		return fmt.Errorf("camera frame: %w", err)
	}

	still, err := capture.Frame(src.Image(), capture.Options{
		Aspect:  captureAspect,
		Mirror:  captureMirror,
		Beauty:  captureBeauty,
		MaxEdge: captureMaxEdge,
	})
	if err != nil {
		return err
	}
	logVerbose("still: %dx%d %s mirror=%t beauty=%t",
		still.Image.Width(), still.Image.Height(), still.Aspect, captureMirror, captureBeauty)

	// The empty state encodes the still untouched.
	out, err := newPipeline("", 0).Compose(cmd.Context(), still.Image, state.State{})
	if err != nil {
		return err
	}

	outDir := captureOutDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	taken := time.Now()
	path, err := export.WriteFile(outDir, out, taken)
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ %s  %dx%d  %s\n", path, out.Width, out.Height, formatBytes(int64(len(out.Data))))

	if captureSave {
		s, err := openStore()
		if err != nil {
			return err
		}
		ph, err := s.Save(store.NewPhoto{Data: out.Data, Timestamp: taken, AspectRatio: still.Aspect})
		if err != nil {
			return fmt.Errorf("save to gallery: %w", err)
		}
		fmt.Printf("  ✓ gallery #%d\n", ph.ID)
	}
	return nil
}
