package backend

import (
	"context"
)

// pacman talks to the sync repositories only.
type pacman struct {
	hookRunner
}

func newPacman(opts Options) (Backend, error) {
	return &pacman{hookRunner{run: opts.Runner}}, nil
}

func (p *pacman) Name() string { return PacmanName }

func (p *pacman) Install(ctx context.Context, names []string, fromLocal bool) error {
	args := []string{"-S", "--noconfirm", "--needed"}
	if fromLocal {
		args = []string{"-U", "--noconfirm"}
	}
	return p.run.Run(ctx, "pacman", append(args, names...)...)
}

func (p *pacman) Remove(ctx context.Context, names []string) error {
	return p.run.Run(ctx, "pacman", append([]string{"-Rs", "--noconfirm"}, names...)...)
}

func (p *pacman) UpdateDB(ctx context.Context) error {
	return p.run.Run(ctx, "pacman", "-Sy")
}

func (p *pacman) UpdateSystem(ctx context.Context) error {
	return p.run.Run(ctx, "pacman", "-Su", "--noconfirm")
}
