package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/pkg/aur"
	"github.com/arthur-debert/packops/pkg/backend"
	"github.com/arthur-debert/packops/pkg/config"
	"github.com/arthur-debert/packops/pkg/job"
	"github.com/arthur-debert/packops/pkg/journal"
	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/operations"
	"github.com/arthur-debert/packops/pkg/paths"
	"github.com/arthur-debert/packops/pkg/progress"
	"github.com/arthur-debert/packops/pkg/runner"
	"github.com/arthur-debert/packops/pkg/style"
)

// Progress display modes.
const (
	progressAuto = "auto"
	progressBar  = "bar"
	progressLog  = "log"
	progressNone = "none"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	var (
		overrides    storageFlags
		progressMode string
		noJournal    bool
	)

	cmd := &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
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
			overrides.apply(cmd, store)

			sink, stop, err := newProgressSink(progressMode)
			if err != nil {
				return err
			}
			defer stop()
			state := progress.New(sink)

			j := &job.Job{
				Config:   cfg,
				Storage:  store,
				Backend:  backendOptions(cfg, opts.newRunner(store)),
				Progress: state,
			}

			if cfg.Journal.Enabled && !noJournal {
				jr, err := journal.Open(journalPath(cfg))
				if err != nil {
					return fmt.Errorf(MsgErrOpenJournal, err)
				}
				defer jr.Close()
				j.Recorder = jr
			}

			failure, err := j.Run(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			if failure != nil {
				return &FailureError{Failure: failure}
			}

			out := cmd.OutOrStdout()
			if opts.dryRun {
				fmt.Fprintln(out, style.WarningStyle.Render(MsgDryRunNotice))
			}
			if state.Total == 0 {
				fmt.Fprintf(out, MsgRunSkipped, style.InfoIndicator)
				return nil
			}
			fmt.Fprintf(out, MsgRunFinished, style.SuccessIndicator, state.Completed, state.Total)
			return nil
		},
	}

	overrides.register(cmd)
	cmd.Flags().StringVar(&progressMode, "progress", progressAuto, MsgFlagProgress)
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, MsgFlagNoJournal)
	_ = cmd.RegisterFlagCompletionFunc("progress", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{progressAuto, progressBar, progressLog, progressNone}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// FailureError reports a job that ended with a Failure.
type FailureError struct {
	*job.Failure
}

func (e *FailureError) Error() string { return e.Failure.String() }

// newProgressSink builds the sink for mode. stop is safe to call twice.
func newProgressSink(mode string) (progress.Sink, func(), error) {
	noop := func() {}
	if mode == progressAuto {
		mode = progressLog
		if style.IsTerminal(os.Stdout) {
			mode = progressBar
		}
	}

	switch mode {
	case progressBar:
		bar, err := progress.NewBarSink(operations.StatusProcessing)
		if err != nil {
			return nil, noop, fmt.Errorf(MsgErrProgress, err)
		}
		stopped := false
		return bar, func() {
			if !stopped {
				stopped = true
				bar.Stop()
			}
		}, nil
	case progressLog:
		return progress.LogSink{Logger: logging.GetLogger("progress")}, noop, nil
	case progressNone:
		return progress.Discard, noop, nil
	default:
		return nil, noop, fmt.Errorf(MsgErrBadProgress, mode)
	}
}

// backendOptions wires the runner, metadata client and AUR fallback
// settings for backend construction.
func backendOptions(cfg *config.Config, r runner.Runner) backend.Options {
	client := aur.NewClient(cfg.AUR.RPCURL,
		aur.WithTimeout(cfg.AUR.Timeout),
		aur.WithUserAgent(cfg.AUR.UserAgent),
	)
	return backend.Options{
		Runner:   r,
		Metadata: client,
		PacmanWrapper: backend.WrapperSettings{
			LiveUser:  cfg.PacmanWrapper.LiveUser,
			LiveGroup: cfg.PacmanWrapper.LiveGroup,
			Helper:    cfg.PacmanWrapper.Helper,
			CacheDir:  cfg.PacmanWrapper.CacheDir,
			BaseURL:   cfg.AUR.BaseURL,
		},
	}
}

func journalPath(cfg *config.Config) string {
	if cfg.Journal.Path != "" {
		return paths.ExpandHome(cfg.Journal.Path)
	}
	return paths.New().JournalPath()
}
