package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/pkg/job"
	"github.com/arthur-debert/packops/pkg/operations"
)

func newCountCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "count",
		Short:   MsgCountShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			store, err := opts.loadStorage()
			if err != nil {
				return err
			}
			entries, err := job.Gather(cfg, store)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), operations.CountUnits(entries))
			return nil
		},
	}
}
