package backend

import (
	"context"
)

// apt drives apt-get. Local installs pass the .deb paths to install, which
// apt-get accepts alongside repository names.
type apt struct {
	hookRunner
}

func newApt(opts Options) (Backend, error) {
	return &apt{hookRunner{run: opts.Runner}}, nil
}

func (a *apt) Name() string { return AptName }

func (a *apt) Install(ctx context.Context, names []string, _ bool) error {
	return a.run.Run(ctx, "apt-get", append([]string{"--quiet", "--yes", "install"}, names...)...)
}

func (a *apt) Remove(ctx context.Context, names []string) error {
	if err := a.run.Run(ctx, "apt-get", append([]string{"--purge", "--quiet", "--yes", "remove"}, names...)...); err != nil {
		return err
	}
	return a.run.Run(ctx, "apt-get", "--purge", "--quiet", "--yes", "autoremove")
}

func (a *apt) UpdateDB(ctx context.Context) error {
	return a.run.Run(ctx, "apt-get", "update")
}

func (a *apt) UpdateSystem(ctx context.Context) error {
	return a.run.Run(ctx, "apt-get", "--quiet", "--yes", "upgrade")
}
