package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dbgstate/internal/state"
)

// NewSlicesCommand creates the slices command.
func NewSlicesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "slices",
		Short:         "List registered slices in registration order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := state.Default()
			if err != nil {
				return err
			}
			names := reg.Names()

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			return out.Success(map[string][]string{"slices": names}, func(w io.Writer) {
				for _, name := range names {
					fmt.Fprintln(w, name)
				}
			})
		},
	}
}
