package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/pkg/keyring"
	"github.com/arthur-debert/packops/pkg/storage"
	"github.com/arthur-debert/packops/pkg/style"
)

func newKeyringCmd(opts *globalOptions) *cobra.Command {
	var overrides storageFlags

	cmd := &cobra.Command{
		Use:     "keyring",
		Short:   MsgKeyringShort,
		Long:    MsgKeyringLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.loadStorage()
			if err != nil {
				return err
			}
			overrides.apply(cmd, store)

			err = keyring.Init(cmd.Context(), opts.newRunner(store),
				store.Bool(storage.KeyOnlineInstall), store.Bool(storage.KeyHasInternet))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgKeyringFinished, style.SuccessIndicator)
			return nil
		},
	}
	overrides.register(cmd)
	return cmd
}
