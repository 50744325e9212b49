package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/momento-cli/internal/batch"
	"github.com/spf13/cobra"
)

var (
	batchFlags   composeFlags
	batchOutDir  string
	batchWorkers int
	batchFormat  string
	batchQuality int
	batchSave    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Apply one filter, frame and sticker to every photo in a directory",
	Long: `Scans input directory for photos (png, jpg, jpeg, webp, gif, bmp, tiff)
and renders each one with the same composition. Output keeps the input
layout: <out>/<relative path>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchFlags.register(batchCmd)
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./momento_out", "output directory")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = config default)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "output format: jpeg or png (default from config)")
	batchCmd.Flags().IntVarP(&batchQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = config default)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "also save every photo to the gallery")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	st, err := batchFlags.resolve()
	if err != nil {
		return err
	}
	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("state:   %s", st)

	bc := batch.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		State:     st,
		Workers:   workers,
		Verbose:   verbose,
	}
	if batchSave {
		if bc.Store, err = openStore(); err != nil {
			return err
		}
	}

	rep, err := batch.New(newPipeline(batchFormat, batchQuality), bc).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	printBatchReport(rep)
	return nil
}

func printBatchReport(rep *batch.Report) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              momento batch complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	var inBytes, outBytes int64
	ok := 0
	for _, r := range rep.Results {
		if r.Err != nil {
			continue
		}
		ok++
		inBytes += r.Source.Size
		outBytes += r.Size
	}

	fmt.Printf("  Photos:      %d rendered, %d failed\n", ok, rep.Failed)
	fmt.Printf("  Input size:  %s\n", formatBytes(inBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(outBytes))
	fmt.Printf("  Time:        %s\n", rep.Duration.Round(time.Millisecond))
	fmt.Printf("  Workers:     %d\n", rep.Workers)
	fmt.Println()

	// Top 10 largest outputs.
	items := make([]batch.Result, 0, ok)
	for _, r := range rep.Results {
		if r.Err == nil {
			items = append(items, r)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Size > items[j].Size })
	n := len(items)
	if n > 10 {
		n = 10
	}
	if n > 0 {
		fmt.Printf("  Top %d largest:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %5dx%-5d %8s\n",
				truncKey(it.Source.Key, 40), it.Width, it.Height, formatBytes(it.Size))
		}
		fmt.Println()
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
