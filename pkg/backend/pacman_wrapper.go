package backend

import (
	"context"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packops/pkg/aur"
	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/logging"
)

// Defaults for the pacman-wrapper fallback path.
const (
	DefaultLiveUser  = "live"
	DefaultLiveGroup = "users"
	DefaultHelper    = "/usr/local/bin/aurpkg.sh"
	DefaultCacheDir  = "/var/cache/aurpkg"
)

// WrapperSettings configures the fallback path of the pacman-wrapper
// backend. Zero values select the defaults.
type WrapperSettings struct {
	LiveUser  string
	LiveGroup string
	Helper    string
	CacheDir  string
	BaseURL   string
}

func (s WrapperSettings) withDefaults() WrapperSettings {
	if s.LiveUser == "" {
		s.LiveUser = DefaultLiveUser
	}
	if s.LiveGroup == "" {
		s.LiveGroup = DefaultLiveGroup
	}
	if s.Helper == "" {
		s.Helper = DefaultHelper
	}
	if s.CacheDir == "" {
		s.CacheDir = DefaultCacheDir
	}
	if s.BaseURL == "" {
		s.BaseURL = aur.DefaultBaseURL
	}
	return s
}

// pacmanWrapper installs from the pacman repositories and falls back to
// building AUR packages through an external helper run as the live user.
type pacmanWrapper struct {
	hookRunner
	settings WrapperSettings
	metadata MetadataClient
	logger   zerolog.Logger
}

func newPacmanWrapper(opts Options) (Backend, error) {
	settings := opts.PacmanWrapper.withDefaults()
	metadata := opts.Metadata
	if metadata == nil {
		metadata = aur.NewClient(aur.DefaultRPCURL)
	}
	return &pacmanWrapper{
		hookRunner: hookRunner{run: opts.Runner},
		settings:   settings,
		metadata:   metadata,
		logger:     logging.GetLogger("backend.pacman-wrapper"),
	}, nil
}

func (p *pacmanWrapper) Name() string { return PacmanWrapperName }

func (p *pacmanWrapper) Install(ctx context.Context, names []string, fromLocal bool) error {
	for _, name := range names {
		if err := p.installOne(ctx, name, fromLocal); err != nil {
			return err
		}
	}
	return nil
}

func (p *pacmanWrapper) Remove(ctx context.Context, names []string) error {
	return p.run.Run(ctx, "pacman", append([]string{"-Rs", "--noconfirm"}, names...)...)
}

func (p *pacmanWrapper) UpdateDB(ctx context.Context) error {
	return p.run.Run(ctx, "pacman", "-Sy")
}

func (p *pacmanWrapper) UpdateSystem(ctx context.Context) error {
	return p.run.Run(ctx, "pacman", "-Su", "--noconfirm")
}

func (p *pacmanWrapper) installOne(ctx context.Context, name string, fromLocal bool) error {
	if fromLocal {
		return p.run.Run(ctx, "pacman", "-U", "--noconfirm", name)
	}

	inRepo, err := p.canInstallFromRepo(ctx, name)
	if err != nil {
		return err
	}
	if inRepo {
		return p.run.Run(ctx, "pacman", "-S", "--noconfirm", name)
	}

	pkg := p.fetchMetadata(ctx, name)
	if pkg == nil {
		if err := p.run.Run(ctx, "rm", "-rf", p.settings.CacheDir); err != nil {
			return err
		}
		p.logger.Warn().Str("package", name).Msg("Package not found in the repositories or the AUR, skipping")
		return nil
	}

	if err := p.installDependencies(ctx, pkg.MakeDepends); err != nil {
		return err
	}
	if err := p.installDependencies(ctx, pkg.Depends); err != nil {
		return err
	}

	url := downloadURL(p.settings.BaseURL, pkg.URLPath)
	archive := path.Base(pkg.URLPath)
	p.logger.Info().
		Str("package", name).
		Str("url", url).
		Msg("Building package from the AUR")

	return p.run.Run(ctx, p.settings.Helper,
		p.settings.LiveUser, p.settings.LiveGroup, name, archive, url)
}

// canInstallFromRepo reports whether a sync repository carries name. Only
// context errors are returned; a failed search means "not in repo".
func (p *pacmanWrapper) canInstallFromRepo(ctx context.Context, name string) (bool, error) {
	err := p.run.Run(ctx, "pacman", "-Ss", "--quiet", name)
	switch {
	case err == nil:
		return true, nil
	case errors.IsErrorCode(err, errors.ErrCommandFailed):
		return false, nil
	default:
		return false, err
	}
}

// fetchMetadata returns nil when the package is unknown or the lookup
// failed.
func (p *pacmanWrapper) fetchMetadata(ctx context.Context, name string) *aur.Package {
	pkg, err := p.metadata.Info(ctx, name)
	if err != nil {
		p.logger.Warn().Err(err).Str("package", name).Msg("Could not fetch AUR metadata")
		return nil
	}
	return pkg
}

func (p *pacmanWrapper) installDependencies(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	p.logger.Debug().Strs("dependencies", names).Msg("Installing dependencies")
	return p.run.Run(ctx, "pacman", append([]string{"-S", "--noconfirm"}, names...)...)
}

// downloadURL joins base and urlPath with exactly one slash.
func downloadURL(base, urlPath string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + urlPath
	}
	return base + urlPath
}

var _ Backend = (*pacmanWrapper)(nil)
