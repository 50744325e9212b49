package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/AnyUserName/momento-cli/internal/config"
	"github.com/AnyUserName/momento-cli/internal/pipeline"
	"github.com/AnyUserName/momento-cli/internal/prefs"
	"github.com/AnyUserName/momento-cli/internal/state"
	"github.com/AnyUserName/momento-cli/internal/sticker"
	"github.com/AnyUserName/momento-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "momento",
	Short: "Photo booth compositor: filters, frames and greeting stickers",
	Long: `momento — turns a camera still into a shareable photo.

Applies a color filter, a decorative frame (built-in or your own PNG) and a
greeting sticker, then exports a JPEG and optionally keeps it in a local
gallery.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		logVerbose("config: format=%s quality=%d store=%s", cfg.Output.Format, cfg.Output.JpegQuality, cfg.Store.Dir)
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $MOMENTO_HOME/config.yaml)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"momento %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[momento] "+format+"\n", args...)
	}
}

func newPipeline(format string, quality int) *pipeline.Pipeline {
	if format == "" {
		format = cfg.Output.Format
	}
	if quality <= 0 {
		quality = cfg.Output.JpegQuality
	}
	return pipeline.New(pipeline.Config{
		Format:  format,
		Quality: quality,
		Fonts:   &sticker.Fonts{Dir: cfg.Fonts.Dir},
		Verbose: verbose,
	})
}

func pins() state.Pins {
	return state.Pins{Store: prefs.NewFile(cfg.Prefs.Path)}
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.Store.Dir)
}

// formatBytes returns a human-readable byte size.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
