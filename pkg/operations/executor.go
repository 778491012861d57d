package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packops/pkg/backend"
	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/locale"
	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/progress"
	"github.com/arthur-debert/packops/pkg/types"
)

// StatusProcessing is shown at the start of every entry.
const StatusProcessing = "Processing packages..."

// Recorder receives the outcome of every package item.
type Recorder interface {
	Record(ctx context.Context, outcome types.Outcome) error
}

// Executor applies operation entries through one backend.
type Executor struct {
	backend  backend.Backend
	progress *progress.State
	locale   string
	recorder Recorder
	now      func() time.Time
	logger   zerolog.Logger
}

// NewExecutor returns an executor crediting progress on state. A nil
// recorder disables outcome recording.
func NewExecutor(b backend.Backend, state *progress.State, loc string, recorder Recorder) *Executor {
	return &Executor{
		backend:  b,
		progress: state,
		locale:   loc,
		recorder: recorder,
		now:      time.Now,
		logger: logging.GetLogger("operations.executor").With().
			Str("backend", b.Name()).
			Logger(),
	}
}

// RunEntry executes the actions of entry in order. The first error from a
// strict action is returned; best-effort failures are logged and skipped.
func (e *Executor) RunEntry(ctx context.Context, entry types.Entry) error {
	e.progress.SetStatus(StatusProcessing)
	e.progress.Report(0)

	for _, action := range entry.Actions {
		switch {
		case action.Tag == types.ActionSource:
			e.logger.Debug().Str("source", action.Source).Msg("Package-list from source")
		case types.IsPackageAction(action.Tag):
			items := e.localize(ctx, action)
			if err := e.runAction(ctx, action.Tag, items); err != nil {
				return err
			}
		default:
			e.logger.Warn().Str("key", action.Tag).Msg("Unknown package-operation key")
		}
	}
	return nil
}

// localize applies locale substitution and removes dropped items from the
// progress total so a fully successful run still ends at Completed == Total.
func (e *Executor) localize(ctx context.Context, action types.Action) []types.PackageItem {
	items := locale.Substitute(action.Items, e.locale)
	if len(items) == len(action.Items) {
		return items
	}

	kept := make(map[string]bool, len(items))
	for _, item := range items {
		kept[item.PackageName()] = true
	}
	for _, item := range action.Items {
		if kept[item.PackageName()] {
			continue
		}
		e.logger.Debug().
			Str("package", item.PackageName()).
			Str("locale", e.locale).
			Msg("Package has no variant for this locale, skipping")
		e.record(ctx, action.Tag, item.PackageName(), types.StatusDropped, nil)
	}
	e.progress.Discount(len(action.Items) - len(items))
	return items
}

func (e *Executor) runAction(ctx context.Context, tag string, items []types.PackageItem) error {
	remove := tag == types.ActionRemove || tag == types.ActionTryRemove
	bestEffort := tag == types.ActionTryInstall || tag == types.ActionTryRemove

	for _, item := range items {
		name := item.PackageName()
		e.progress.SetStatus(statusFor(remove, name, e.progress.Completed+1, e.progress.Total))
		e.progress.Report(0)

		var err error
		if remove {
			err = backend.RemovePackage(ctx, e.backend, item)
		} else {
			err = backend.InstallPackage(ctx, e.backend, item, tag == types.ActionLocalInstall)
		}

		if err != nil {
			e.record(ctx, tag, name, types.StatusFailed, err)
			if bestEffort && errors.IsErrorCode(err, errors.ErrCommandFailed) {
				verb := "install"
				if remove {
					verb = "remove"
				}
				e.logger.Warn().Err(err).Str("package", name).Msgf("Could not %s package %s", verb, name)
				continue
			}
			return err
		}

		status := types.StatusInstalled
		if remove {
			status = types.StatusRemoved
		}
		e.record(ctx, tag, name, status, nil)
		e.progress.Report(1)
	}
	return nil
}

func (e *Executor) record(ctx context.Context, tag, name, status string, cause error) {
	if e.recorder == nil {
		return
	}
	outcome := types.Outcome{
		Time:    e.now(),
		Backend: e.backend.Name(),
		Action:  tag,
		Package: name,
		Status:  status,
	}
	if cause != nil {
		outcome.Error = cause.Error()
	}
	if err := e.recorder.Record(ctx, outcome); err != nil {
		e.logger.Warn().Err(err).Str("package", name).Msg("Could not record package outcome")
	}
}

func statusFor(remove bool, name string, n, total int) string {
	if remove {
		return fmt.Sprintf("Removing %s... (%d/%d)", name, n, total)
	}
	return fmt.Sprintf("Installing %s... (%d/%d)", name, n, total)
}
