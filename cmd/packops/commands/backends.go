package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/pkg/backend"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "backends",
		Short:   MsgBackendsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range backend.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
