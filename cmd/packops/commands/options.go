package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/pkg/config"
	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/paths"
	"github.com/arthur-debert/packops/pkg/runner"
	"github.com/arthur-debert/packops/pkg/storage"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	verbosity   int
	dryRun      bool
	configPath  string
	storagePath string
	root        string
}

// storageFlags override shared storage values for one invocation.
type storageFlags struct {
	online   bool
	internet bool
	locale   string
}

func (s *storageFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.online, "online", false, MsgFlagOnline)
	cmd.Flags().BoolVar(&s.internet, "internet", false, MsgFlagInternet)
	cmd.Flags().StringVar(&s.locale, "locale", "", MsgFlagLocale)
}

// apply copies the flags the user actually set into store.
func (s *storageFlags) apply(cmd *cobra.Command, store *storage.Store) {
	if cmd.Flags().Changed("online") {
		store.Set(storage.KeyOnlineInstall, s.online)
	}
	if cmd.Flags().Changed("internet") {
		store.Set(storage.KeyHasInternet, s.internet)
	}
	if cmd.Flags().Changed("locale") {
		store.Set(storage.KeyLocale, s.locale)
	}
}

// loadConfig loads the --config file, or the default config file when it
// exists, or the built-in defaults alone.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	path := g.configPath
	if path == "" {
		if candidate := paths.New().ConfigFile(); fileExists(candidate) {
			path = candidate
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// loadStorage loads the --storage document or the default one. --root
// replaces the stored root mount point.
func (g *globalOptions) loadStorage() (*storage.Store, error) {
	path := g.storagePath
	if path == "" {
		path = paths.New().StorageFile()
	}
	store, err := storage.Load(path)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadStorage, err)
	}
	if g.root != "" {
		store.Set(storage.KeyRootMountPoint, g.root)
	}
	return store, nil
}

// newRunner returns the command runner for the target at the stored root
// and tags further log lines with that target.
func (g *globalOptions) newRunner(store *storage.Store) runner.Runner {
	root := store.String(storage.KeyRootMountPoint)
	logging.SetTarget(logging.Target{Root: root, DryRun: g.dryRun})
	if g.dryRun {
		return runner.DryRunner{}
	}
	return runner.NewExecRunner(root)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
