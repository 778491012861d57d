package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/packops/pkg/types"
)

const sampleHeader = `# packops job configuration
#
# backend selects the package manager: pacman-wrapper, pacman, apt or dummy.
# Each [[operations]] table is one entry; its keys are install, try_install,
# remove, try_remove, localInstall and source. A package is either a name or
# an inline table with package, pre-script and post-script. Names may use
# $LOCALE, which is replaced by the selected locale; with the English locale
# such packages are skipped.

`

// Sample returns an example configuration with every key set.
func Sample() *Config {
	return &Config{
		Backend:       "pacman-wrapper",
		UpdateDB:      true,
		PacmanWrapper: PacmanWrapper{LiveUser: "live", LiveGroup: "users", Helper: "/usr/local/bin/aurpkg.sh", CacheDir: "/var/cache/aurpkg"},
		AUR:           AUR{RPCURL: "https://aur.archlinux.org/rpc.php", BaseURL: "https://aur.archlinux.org", UserAgent: "packops"},
		Journal:       Journal{Enabled: true},
		Operations: []types.Entry{
			{Actions: []types.Action{
				{Tag: types.ActionInstall, Items: []types.PackageItem{types.Simple("vim"), types.Simple("htop")}},
				{Tag: types.ActionTryInstall, Items: []types.PackageItem{types.Simple("firefox-i18n-$LOCALE")}},
			}},
			{Actions: []types.Action{
				{Tag: types.ActionInstall, Items: []types.PackageItem{
					types.WithHooks("docker", "groupadd -f docker", "systemctl enable docker"),
				}},
				{Tag: types.ActionTryRemove, Items: []types.PackageItem{types.Simple("nano")}},
			}},
		},
	}
}

// MarshalTOML renders c in the job configuration file format.
func (c *Config) MarshalTOML() ([]byte, error) {
	ops := make([]map[string]interface{}, 0, len(c.Operations))
	for _, e := range c.Operations {
		ops = append(ops, e.Value())
	}

	aur := map[string]interface{}{
		"rpc_url":    c.AUR.RPCURL,
		"base_url":   c.AUR.BaseURL,
		"user_agent": c.AUR.UserAgent,
	}
	if c.AUR.Timeout > 0 {
		aur["timeout"] = c.AUR.Timeout.String()
	}

	doc := map[string]interface{}{
		"backend":             c.Backend,
		"skip_if_no_internet": c.SkipIfNoInternet,
		"update_db":           c.UpdateDB,
		"update_system":       c.UpdateSystem,
		"pacman_wrapper": map[string]interface{}{
			"live_user":  c.PacmanWrapper.LiveUser,
			"live_group": c.PacmanWrapper.LiveGroup,
			"helper":     c.PacmanWrapper.Helper,
			"cache_dir":  c.PacmanWrapper.CacheDir,
		},
		"aur": aur,
		"journal": map[string]interface{}{
			"enabled": c.Journal.Enabled,
			"path":    c.Journal.Path,
		},
		"operations": ops,
	}

	var buf bytes.Buffer
	buf.WriteString(sampleHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
