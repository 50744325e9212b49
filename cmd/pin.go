package cmd

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/momento-cli/internal/frame"
	"github.com/AnyUserName/momento-cli/internal/state"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin [frame]",
	Short: "Show, pin or unpin the default frame",
	Long: `Without arguments, prints the pinned default frame. With a frame name,
pins it as the default for new sessions, or unpins it when it is already
pinned. Custom frames cannot be pinned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPin,
}

func init() {
	rootCmd.AddCommand(pinCmd)
}

func runPin(_ *cobra.Command, args []string) error {
	p := pins()
	if len(args) == 0 {
		k, ok, err := p.Pinned()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  No frame pinned")
			return nil
		}
		fmt.Printf("  📌 %s (%s)\n", k.Label(), k)
		return nil
	}

	k, ok := frame.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown frame %q", args[0])
	}
	pinned, err := p.Toggle(frame.Of(k))
	if errors.Is(err, state.ErrInvalidPinTarget) {
		fmt.Println("  ✗ Custom frames can't be set as default")
		return nil
	}
	if err != nil {
		return err
	}
	if pinned {
		fmt.Printf("  📌 %s set as default frame\n", k.Label())
	} else {
		fmt.Printf("  %s unpinned\n", k.Label())
	}
	return nil
}
