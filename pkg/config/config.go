package config

import (
	"time"

	"github.com/arthur-debert/packops/pkg/types"
)

// Config is the packages job configuration.
type Config struct {
	Backend          string `koanf:"backend" toml:"backend"`
	SkipIfNoInternet bool   `koanf:"skip_if_no_internet" toml:"skip_if_no_internet"`
	UpdateDB         bool   `koanf:"update_db" toml:"update_db"`
	UpdateSystem     bool   `koanf:"update_system" toml:"update_system"`

	PacmanWrapper PacmanWrapper `koanf:"pacman_wrapper" toml:"pacman_wrapper"`
	AUR           AUR           `koanf:"aur" toml:"aur"`
	Journal       Journal       `koanf:"journal" toml:"journal"`

	// Operations is decoded separately to keep package items typed.
	Operations []types.Entry `koanf:"-" toml:"-"`
}

// PacmanWrapper configures the AUR fallback of the pacman-wrapper backend.
type PacmanWrapper struct {
	LiveUser  string `koanf:"live_user" toml:"live_user"`
	LiveGroup string `koanf:"live_group" toml:"live_group"`
	Helper    string `koanf:"helper" toml:"helper"`
	CacheDir  string `koanf:"cache_dir" toml:"cache_dir"`
}

// AUR configures the metadata service.
type AUR struct {
	RPCURL    string        `koanf:"rpc_url" toml:"rpc_url"`
	BaseURL   string        `koanf:"base_url" toml:"base_url"`
	Timeout   time.Duration `koanf:"timeout" toml:"timeout"`
	UserAgent string        `koanf:"user_agent" toml:"user_agent"`
}

// Journal configures the outcome journal. An empty Path selects the
// default location under the data directory.
type Journal struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Path    string `koanf:"path" toml:"path"`
}
