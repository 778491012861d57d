package backend

import (
	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/registry"
	"github.com/arthur-debert/packops/pkg/runner"
)

// Backend identifiers.
const (
	PacmanWrapperName = "pacman-wrapper"
	PacmanName        = "pacman"
	AptName           = "apt"
	DummyName         = "dummy"
)

// Factory builds a backend from options.
type Factory func(opts Options) (Backend, error)

var factories = registry.New[Factory]()

func init() {
	registry.MustRegister(factories, PacmanWrapperName, newPacmanWrapper)
	registry.MustRegister(factories, PacmanName, newPacman)
	registry.MustRegister(factories, AptName, newApt)
	registry.MustRegister(factories, DummyName, newDummy)
}

// New resolves id to a backend. Unknown identifiers yield an error coded
// errors.ErrBadBackend with the identifier in the "backend" detail.
func New(id string, opts Options) (Backend, error) {
	if !factories.Has(id) {
		return nil, errors.Newf(errors.ErrBadBackend, "unknown backend %q", id).
			WithDetail("backend", id)
	}
	factory, err := factories.Get(id)
	if err != nil {
		return nil, err
	}
	if opts.Runner == nil {
		opts.Runner = runner.NewExecRunner("")
	}
	return factory(opts)
}

// Names lists the known backend identifiers in sorted order.
func Names() []string {
	return factories.List()
}
