package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AnyUserName/momento-cli/internal/capture"
	"github.com/AnyUserName/momento-cli/internal/export"
	"github.com/AnyUserName/momento-cli/internal/pipeline"
	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/AnyUserName/momento-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	renderFlags   composeFlags
	renderOutDir  string
	renderFormat  string
	renderQuality int
	renderAspect  string
	renderMirror  bool
	renderSave    bool
)

var renderCmd = &cobra.Command{
	Use:   "render <photo>",
	Short: "Compose one photo with a filter, frame and sticker",
	Long: `Applies the selected filter, frame and sticker to a photo and writes
momento-<unix ms>.jpg to the output directory.

With --aspect the photo is first cropped like a camera capture (9:16 or
16:9). Without --frame the pinned default frame is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "output directory (default from config)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "output format: jpeg or png (default from config)")
	renderCmd.Flags().IntVarP(&renderQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = config default)")
	renderCmd.Flags().StringVar(&renderAspect, "aspect", "", "crop to a capture aspect ratio first: 9:16 or 16:9")
	renderCmd.Flags().BoolVar(&renderMirror, "mirror", false, "mirror horizontally (front camera)")
	renderCmd.Flags().BoolVar(&renderSave, "save", false, "also save to the gallery")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()

	st, err := renderFlags.resolve()
	if err != nil {
		return err
	}
	logVerbose("state: %s", st)

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}
	src, err := raster.Decode(data)
	if err != nil {
		return fmt.Errorf("photo: %w", err)
	}

	aspect := ""
	if renderAspect != "" || renderMirror {
		still, err := capture.Frame(src.Image(), capture.Options{Aspect: renderAspect, Mirror: renderMirror})
		if err != nil {
			return err
		}
		src, aspect = still.Image, still.Aspect
		logVerbose("capture crop: %dx%d (%s)", src.Width(), src.Height(), aspect)
	}

	comp := pipeline.NewCompositor(newPipeline(renderFormat, renderQuality))
	out, err := comp.Render(cmd.Context(), src, st)
	if errors.Is(err, pipeline.ErrStaleGeneration) {
		return nil
	}
	if err != nil {
		return err
	}

	outDir := renderOutDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	taken := time.Now()
	path, err := export.WriteFile(outDir, out, taken)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Photo:    %s\n", path)
	fmt.Printf("  Size:     %dx%d, %s (%s)\n", out.Width, out.Height, formatBytes(int64(len(out.Data))), out.MIMEType)
	fmt.Printf("  Filter:   %s\n", st.Filter.Label())
	fmt.Printf("  Frame:    %s\n", st.Frame.Kind().Label())
	if !st.Sticker.IsNone() {
		fmt.Printf("  Sticker:  %s\n", st.Sticker.Label)
	}

	if renderSave {
		s, err := openStore()
		if err != nil {
			return err
		}
		if aspect == "" {
			aspect = aspectFor(out.Width, out.Height)
		}
		ph, err := s.Save(store.NewPhoto{Data: out.Data, Timestamp: taken, AspectRatio: aspect})
		if err != nil {
			return fmt.Errorf("save to gallery: %w", err)
		}
		fmt.Printf("  Gallery:  #%d (%s)\n", ph.ID, ph.Path)
	}
	fmt.Printf("  Time:     %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Println()
	return nil
}

func aspectFor(w, h int) string {
	if w > h {
		return "16:9"
	}
	return "9:16"
}
