package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/AnyUserName/momento-cli/internal/store"
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Inspect and manage saved photos",
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved photos, newest first",
	Args:  cobra.NoArgs,
	RunE:  runGalleryList,
}

var galleryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display gallery statistics",
	Args:  cobra.NoArgs,
	RunE:  runGalleryStats,
}

var galleryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the gallery index against the files on disk",
	Args:  cobra.NoArgs,
	RunE:  runGalleryValidate,
}

var galleryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved photo",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryDelete,
}

func init() {
	galleryCmd.AddCommand(galleryListCmd, galleryStatsCmd, galleryValidateCmd, galleryDeleteCmd)
	rootCmd.AddCommand(galleryCmd)
}

func runGalleryList(_ *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	photos, err := s.List()
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		fmt.Println("  Gallery is empty")
		return nil
	}
	fmt.Println()
	for _, p := range photos {
		fmt.Printf("  #%-4d %s  %-5s %5dx%-5d %8s  %s\n",
			p.ID, formatTimestamp(p.Timestamp), p.AspectRatio, p.Width, p.Height,
			formatBytes(p.Size), truncKey(p.Path, 32))
	}
	fmt.Println()
	return nil
}

func runGalleryStats(_ *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	st, err := s.Stats()
	if err != nil {
		return err
	}
	photos, err := s.List()
	if err != nil {
		return err
	}
	printGalleryStats(s.Dir(), st, photos)
	return nil
}

func printGalleryStats(dir string, s store.Stats, photos []store.Photo) {
	fmt.Println()
	fmt.Printf("  Gallery:          %s\n", dir)
	fmt.Printf("  Total photos:     %d\n", s.TotalPhotos)
	fmt.Printf("  Total size:       %s\n", formatBytes(s.TotalBytes))
	if s.TotalPhotos > 0 {
		fmt.Printf("  Average size:     %s\n", formatBytes(s.TotalBytes/int64(s.TotalPhotos)))
		fmt.Printf("  Oldest:           %s\n", formatTimestamp(s.Oldest))
		fmt.Printf("  Newest:           %s\n", formatTimestamp(s.Newest))
	}
	fmt.Println()

	if len(s.ByAspect) > 0 {
		var aspects []string
		for a := range s.ByAspect {
			aspects = append(aspects, a)
		}
		sort.Strings(aspects)
		fmt.Println("  Aspect breakdown:")
		for _, a := range aspects {
			fmt.Printf("    %-6s  %4d photos\n", a, s.ByAspect[a])
		}
		fmt.Println()
	}

	// Warnings.
	var warnings []string
	for _, p := range photos {
		if p.ThumbHash == "" {
			warnings = append(warnings, fmt.Sprintf("photo #%d missing thumbhash", p.ID))
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}

func runGalleryValidate(_ *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	errs, err := s.Validate()
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		st, err := s.Stats()
		if err != nil {
			return err
		}
		fmt.Println("  ✓ Gallery is valid")
		fmt.Printf("  ✓ %d photos, %s — all files present\n", st.TotalPhotos, formatBytes(st.TotalBytes))
		return nil
	}

	fmt.Printf("  ✗ Gallery has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func runGalleryDelete(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid photo id %q", args[0])
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	if err := s.Delete(id); err != nil {
		return err
	}
	fmt.Printf("  ✓ Deleted photo #%d\n", id)
	return nil
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04:05")
}
