package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packops/pkg/config"
	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/testutil"
	"github.com/arthur-debert/packops/pkg/types"
)

func TestLoad_TOML(t *testing.T) {
	path := testutil.WriteFile(t, "packages.toml", `
backend = "pacman"
update_db = true

[aur]
timeout = "5s"

[[operations]]
install = ["vim"]
try_install = [{ package = "docker", pre-script = "groupadd docker", post-script = "" }]
source = "netinstall"

[[operations]]
try_remove = ["nano"]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pacman", cfg.Backend)
	assert.True(t, cfg.UpdateDB)
	assert.False(t, cfg.UpdateSystem)
	assert.False(t, cfg.SkipIfNoInternet)
	assert.Equal(t, 5*time.Second, cfg.AUR.Timeout)

	// defaults survive
	assert.Equal(t, "live", cfg.PacmanWrapper.LiveUser)
	assert.Equal(t, "users", cfg.PacmanWrapper.LiveGroup)
	assert.Equal(t, "https://aur.archlinux.org/rpc.php", cfg.AUR.RPCURL)
	assert.True(t, cfg.Journal.Enabled)

	require.Len(t, cfg.Operations, 2)
	install, ok := cfg.Operations[0].Action(types.ActionInstall)
	require.True(t, ok)
	require.Len(t, install.Items, 1)
	assert.Equal(t, "vim", install.Items[0].PackageName())

	try, ok := cfg.Operations[0].Action(types.ActionTryInstall)
	require.True(t, ok)
	require.Len(t, try.Items, 1)
	assert.True(t, try.Items[0].HasHooks())
	assert.Equal(t, "groupadd docker", try.Items[0].PreScript)

	source, ok := cfg.Operations[0].Action(types.ActionSource)
	require.True(t, ok)
	assert.Equal(t, "netinstall", source.Source)
}

func TestLoad_YAMLKeepsTagOrder(t *testing.T) {
	path := testutil.WriteFile(t, "packages.conf", `
backend: pacman-wrapper
skip_if_no_internet: true
operations:
  - try_remove:
      - nano
    install:
      - vim
    try_install:
      - firefox-i18n-$LOCALE
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.SkipIfNoInternet)

	require.Len(t, cfg.Operations, 1)
	var tags []string
	for _, a := range cfg.Operations[0].Actions {
		tags = append(tags, a.Tag)
	}
	assert.Equal(t, []string{"try_remove", "install", "try_install"}, tags)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := testutil.WriteFile(t, "packages.toml", `backend = "pacman"`)
	t.Setenv("PACKOPS_BACKEND", "apt")
	t.Setenv("PACKOPS_UPDATE_SYSTEM", "true")
	t.Setenv("PACKOPS_PACMAN_WRAPPER__LIVE_USER", "liveuser")
	t.Setenv("PACKOPS_AUR__TIMEOUT", "2m")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "apt", cfg.Backend)
	assert.True(t, cfg.UpdateSystem)
	assert.Equal(t, "liveuser", cfg.PacmanWrapper.LiveUser)
	assert.Equal(t, 2*time.Minute, cfg.AUR.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing backend", func(t *testing.T) {
		_, err := config.Load(testutil.WriteFile(t, "packages.toml", `update_db = true`))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("no file and no env", func(t *testing.T) {
		_, err := config.Load("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := config.Load(testutil.WriteFile(t, "packages.ini", "backend=pacman"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := config.Load(testutil.WriteFile(t, "packages.toml", `backend = `))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("bad package item", func(t *testing.T) {
		_, err := config.Load(testutil.WriteFile(t, "packages.toml", `
backend = "pacman"
[[operations]]
install = [{ pre-script = "true" }]
`))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestSample_RoundTrips(t *testing.T) {
	sample := config.Sample()
	data, err := sample.MarshalTOML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "packages.toml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, sample.Backend, cfg.Backend)
	assert.Equal(t, sample.UpdateDB, cfg.UpdateDB)
	require.Len(t, cfg.Operations, len(sample.Operations))

	first, ok := cfg.Operations[0].Action(types.ActionInstall)
	require.True(t, ok)
	assert.Equal(t, "vim", first.Items[0].PackageName())

	hooked, ok := cfg.Operations[1].Action(types.ActionInstall)
	require.True(t, ok)
	require.Len(t, hooked.Items, 1)
	assert.Equal(t, "docker", hooked.Items[0].PackageName())
	assert.Equal(t, "systemctl enable docker", hooked.Items[0].PostScript)
}
