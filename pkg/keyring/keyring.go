// Package keyring prepares the pacman keyring of the target system before
// packages are installed.
package keyring

import (
	"context"

	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/runner"
)

// Init initializes and populates the keyring. With connectivity the sync
// databases are force-refreshed and, on an online install, the
// archlinux-keyring package is brought up to date as well.
func Init(ctx context.Context, r runner.Runner, online, internet bool) error {
	logger := logging.GetLogger("keyring")
	done := logging.LogOperationStart(logger, "keyring init")
	defer done()

	steps := [][]string{
		{"pacman-key", "--init"},
		{"pacman-key", "--populate", "archlinux"},
	}
	if internet {
		steps = append(steps, []string{"pacman", "-Syy"})
		if online {
			steps = append(steps, []string{"pacman", "-S", "--noconfirm", "archlinux-keyring"})
		}
	}

	for _, argv := range steps {
		if err := r.Run(ctx, argv[0], argv[1:]...); err != nil {
			return err
		}
	}
	return nil
}
