package backend

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packops/pkg/logging"
)

// dummy logs every call and never starts a process.
type dummy struct {
	logger zerolog.Logger
}

func newDummy(Options) (Backend, error) {
	return &dummy{logger: logging.GetLogger("backend.dummy")}, nil
}

func (d *dummy) Name() string { return DummyName }

func (d *dummy) Install(_ context.Context, names []string, fromLocal bool) error {
	d.logger.Info().Strs("packages", names).Bool("from_local", fromLocal).Msg("Install")
	return nil
}

func (d *dummy) Remove(_ context.Context, names []string) error {
	d.logger.Info().Strs("packages", names).Msg("Remove")
	return nil
}

func (d *dummy) UpdateDB(context.Context) error {
	d.logger.Info().Msg("Update database")
	return nil
}

func (d *dummy) UpdateSystem(context.Context) error {
	d.logger.Info().Msg("Update system")
	return nil
}

func (d *dummy) RunHook(_ context.Context, script string) error {
	if script != "" {
		d.logger.Info().Str("script", script).Msg("Run hook")
	}
	return nil
}
