package cmd

import (
	"fmt"

	"github.com/AnyUserName/momento-cli/internal/filter"
	"github.com/AnyUserName/momento-cli/internal/frame"
	"github.com/AnyUserName/momento-cli/internal/sticker"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the available filters, frames and stickers",
	Args:  cobra.NoArgs,
	RunE:  runFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func runFilters(_ *cobra.Command, _ []string) error {
	pinned, hasPin, err := pins().Pinned()
	if err != nil {
		logVerbose("read pinned frame: %v", err)
	}

	fmt.Println()
	fmt.Println("  Filters:")
	for _, f := range filter.All() {
		fmt.Printf("    %-12s %s\n", f, f.Label())
	}
	fmt.Println()

	fmt.Println("  Frames:")
	for _, k := range frame.Kinds() {
		mark := ""
		if hasPin && k == pinned {
			mark = "  📌"
		}
		if k == frame.Custom {
			fmt.Printf("    %-12s %s (--frame-file)\n", k, k.Label())
			continue
		}
		fmt.Printf("    %-12s %s%s\n", k, k.Label(), mark)
	}
	fmt.Println()

	fmt.Println("  Stickers:")
	fmt.Printf("    %-12s %s\n", "none", "Nenhum")
	for _, s := range sticker.Catalog() {
		fmt.Printf("    %-12s %-18q %s %.0fpx\n", s.Name, s.Text, s.Font.Family, s.Font.BaseSize)
	}
	fmt.Println()
	return nil
}
