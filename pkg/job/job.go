// Package job runs the packages job: it resolves the backend, performs the
// optional database and system updates, and executes every configured and
// contributed operation entry while reporting progress.
package job

import (
	"context"
	"fmt"

	"github.com/arthur-debert/packops/pkg/backend"
	"github.com/arthur-debert/packops/pkg/config"
	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/operations"
	"github.com/arthur-debert/packops/pkg/progress"
	"github.com/arthur-debert/packops/pkg/storage"
	"github.com/arthur-debert/packops/pkg/types"
)

// Status texts of the update steps.
const (
	StatusUpdatingDB     = "Updating package database..."
	StatusUpdatingSystem = "Updating installed packages..."
)

// Failure is the one recognised fatal configuration outcome: a short title
// and a detail string for the host to display.
type Failure struct {
	Title  string
	Detail string
}

func (f *Failure) String() string {
	return fmt.Sprintf("%s: %s", f.Title, f.Detail)
}

// Job holds everything one run needs.
type Job struct {
	Config   *config.Config
	Storage  *storage.Store
	Backend  backend.Options
	Progress *progress.State

	// Recorder receives per-package outcomes; nil disables recording.
	Recorder operations.Recorder

	// NewBackend resolves the backend identifier. Defaults to backend.New.
	NewBackend func(id string, opts backend.Options) (backend.Backend, error)
}

// Run executes the job. It returns a Failure for an unknown backend, an
// error when a strict step fails, and (nil, nil) on success or skip.
func (j *Job) Run(ctx context.Context) (*Failure, error) {
	logger := logging.GetLogger("job")
	done := logging.LogOperationStart(logger, "packages")
	defer done()

	state := j.Progress
	if state == nil {
		state = progress.New(nil)
	}
	store := j.Storage
	if store == nil {
		store = storage.New()
	}

	if !store.Bool(storage.KeyOnlineInstall) {
		logger.Warn().Msg("Running in offline mode. Skipping Package Installation.")
		return nil, nil
	}

	newBackend := j.NewBackend
	if newBackend == nil {
		newBackend = backend.New
	}
	pkgman, err := newBackend(j.Config.Backend, j.Backend)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrBadBackend) {
			logger.Error().Str("backend", j.Config.Backend).Msg("Bad backend")
			return &Failure{Title: "Bad backend", Detail: fmt.Sprintf("backend=%q", j.Config.Backend)}, nil
		}
		return nil, err
	}
	logger = logger.With().Str("backend", pkgman.Name()).Logger()

	internet := store.Bool(storage.KeyHasInternet)
	if j.Config.SkipIfNoInternet && !internet {
		logger.Warn().Msg("Package installation has been skipped: no internet")
		return nil, nil
	}

	if j.Config.UpdateDB && internet {
		state.SetStatus(StatusUpdatingDB)
		state.Set(0)
		if err := pkgman.UpdateDB(ctx); err != nil {
			return nil, err
		}
	}

	if j.Config.UpdateSystem && internet {
		state.SetStatus(StatusUpdatingSystem)
		state.Set(0)
		if err := pkgman.UpdateSystem(ctx); err != nil {
			return nil, err
		}
	}

	entries, err := Gather(j.Config, store)
	if err != nil {
		return nil, err
	}

	state.Reset(operations.CountUnits(entries))
	if state.Total == 0 {
		logger.Debug().Msg("No package to process")
		return nil, nil
	}

	state.Set(0)
	logger.Info().Int("total", state.Total).Int("entries", len(entries)).Msg("Processing package operations")

	exec := operations.NewExecutor(pkgman, state, store.Locale(), j.Recorder)
	for i, entry := range entries {
		if err := exec.RunEntry(ctx, entry); err != nil {
			logger.Error().Err(err).Int("entry", i).Msg("Package operation failed")
			return nil, err
		}
	}

	state.Set(1)
	logger.Info().
		Int("completed", state.Completed).
		Int("total", state.Total).
		Msg("Package operations finished")
	return nil, nil
}

// Gather returns the configured operations followed by the ones other
// jobs contributed through storage.
func Gather(cfg *config.Config, store *storage.Store) ([]types.Entry, error) {
	contributed, err := store.Operations()
	if err != nil {
		return nil, err
	}
	entries := make([]types.Entry, 0, len(cfg.Operations)+len(contributed))
	entries = append(entries, cfg.Operations...)
	return append(entries, contributed...), nil
}
