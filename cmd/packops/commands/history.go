package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/pkg/journal"
	"github.com/arthur-debert/packops/pkg/style"
)

const defaultHistoryLimit = 20

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Short:   MsgHistoryShort,
		Long:    MsgHistoryLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			jr, err := journal.Open(journalPath(cfg))
			if err != nil {
				return fmt.Errorf(MsgErrOpenJournal, err)
			}
			defer jr.Close()

			records, err := jr.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, MsgNoHistory)
				return nil
			}

			data := pterm.TableData{{"Time", "Run", "Backend", "Action", "Package", "Status", "Error"}}
			for _, r := range records {
				data = append(data, []string{
					r.Time.Local().Format(time.DateTime),
					r.RunID,
					r.Backend,
					r.Action,
					r.Package,
					style.OutcomeStyle(r.Status).Sprint(r.Status),
					r.Error,
				})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, MsgFlagLimit)
	return cmd
}
