// Package commands implements the packops command line.
package commands

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/internal/version"
	"github.com/arthur-debert/packops/pkg/cobrax/topics"
	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/style"
)

//go:embed topics/*.md
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "packops",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("packops version {{.Version}}\n  commit: %s\n  built:  %s\n",
		version.Commit, version.Date))

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	flags.StringVar(&opts.storagePath, "storage", "", MsgFlagStorage)
	flags.StringVar(&opts.root, "root", "", MsgFlagRoot)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newCountCmd(opts))
	rootCmd.AddCommand(newKeyringCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newBackendsCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newCompletionCmd())

	topicFS, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		tm, err := topics.Install(rootCmd, topicFS, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.RendererFor(style.IsTerminal(os.Stdout)),
		})
		if err == nil {
			rootCmd.AddCommand(newTopicsCmd(tm))
		} else {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}
