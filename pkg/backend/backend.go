// Package backend drives a package manager inside the target environment.
//
// Backends are chosen by identifier from a fixed table (see New). Every
// package-manager call is an external process; a non-zero exit surfaces as
// an error coded errors.ErrCommandFailed and callers decide whether to
// propagate it.
package backend

import (
	"context"

	"github.com/arthur-debert/packops/pkg/aur"
	"github.com/arthur-debert/packops/pkg/runner"
	"github.com/arthur-debert/packops/pkg/types"
)

// Backend is the capability set of one package manager.
type Backend interface {
	// Name returns the identifier the backend was registered under.
	Name() string

	// Install installs each name in order. With fromLocal the names are
	// paths to package archives already present in the target.
	Install(ctx context.Context, names []string, fromLocal bool) error

	// Remove uninstalls names in one batched call.
	Remove(ctx context.Context, names []string) error

	// UpdateDB refreshes the package index.
	UpdateDB(ctx context.Context) error

	// UpdateSystem upgrades every installed package.
	UpdateSystem(ctx context.Context) error

	// RunHook runs a shell command string in the target. Empty scripts
	// are a no-op.
	RunHook(ctx context.Context, script string) error
}

// MetadataClient looks up remote package metadata by exact name. A nil
// package with a nil error means the package is unknown to the service.
type MetadataClient interface {
	Info(ctx context.Context, name string) (*aur.Package, error)
}

// Options carries what a factory needs to build a backend.
type Options struct {
	Runner        runner.Runner
	Metadata      MetadataClient
	PacmanWrapper WrapperSettings
}

// InstallPackage runs the item's pre-script, installs its single package
// and runs its post-script. The first failure stops the sequence.
func InstallPackage(ctx context.Context, b Backend, item types.PackageItem, fromLocal bool) error {
	if err := b.RunHook(ctx, item.PreScript); err != nil {
		return err
	}
	if err := b.Install(ctx, []string{item.PackageName()}, fromLocal); err != nil {
		return err
	}
	return b.RunHook(ctx, item.PostScript)
}

// RemovePackage is the removal counterpart of InstallPackage.
func RemovePackage(ctx context.Context, b Backend, item types.PackageItem) error {
	if err := b.RunHook(ctx, item.PreScript); err != nil {
		return err
	}
	if err := b.Remove(ctx, []string{item.PackageName()}); err != nil {
		return err
	}
	return b.RunHook(ctx, item.PostScript)
}

// hookRunner implements RunHook on top of a runner.
type hookRunner struct {
	run runner.Runner
}

func (h hookRunner) RunHook(ctx context.Context, script string) error {
	return runner.RunScript(ctx, h.run, script)
}
