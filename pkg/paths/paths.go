// Package paths provides centralized path handling for packops.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for packops
	EnvConfigDir = "PACKOPS_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for packops
	EnvDataDir = "PACKOPS_DATA_DIR"

	// EnvCacheDir overrides the XDG cache directory for packops
	EnvCacheDir = "PACKOPS_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for packops
	EnvStateDir = "PACKOPS_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for packops-specific files
	AppDirName = "packops"

	// ConfigFileName is the default job configuration file
	ConfigFileName = "packops.toml"

	// StorageFileName is the default shared storage document
	StorageFileName = "storage.yaml"

	// JournalFileName is the SQLite journal of package outcomes
	JournalFileName = "journal.db"

	// LogFileName is the name of the log file
	LogFileName = "packops.log"
)

// Paths provides centralized path management for packops
type Paths interface {
	ConfigDir() string
	DataDir() string
	CacheDir() string
	StateDir() string
	ConfigFile() string
	StorageFile() string
	JournalPath() string
	LogFilePath() string
}

type paths struct {
	config string
	data   string
	cache  string
	state  string
}

// New resolves the packops directories from the environment.
func New() Paths {
	return &paths{
		config: resolve(EnvConfigDir, xdg.ConfigHome),
		data:   resolve(EnvDataDir, xdg.DataHome),
		cache:  resolve(EnvCacheDir, xdg.CacheHome),
		state:  resolve(EnvStateDir, xdg.StateHome),
	}
}

// resolve prefers an explicit override and otherwise nests AppDirName
// under the XDG base directory.
func resolve(envVar, base string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(base, AppDirName)
}

func (p *paths) ConfigDir() string { return p.config }
func (p *paths) DataDir() string   { return p.data }
func (p *paths) CacheDir() string  { return p.cache }
func (p *paths) StateDir() string  { return p.state }

// ConfigFile returns the default job configuration file path
func (p *paths) ConfigFile() string {
	return filepath.Join(p.config, ConfigFileName)
}

// StorageFile returns the default shared storage document path
func (p *paths) StorageFile() string {
	return filepath.Join(p.state, StorageFileName)
}

// JournalPath returns the path of the SQLite journal
func (p *paths) JournalPath() string {
	return filepath.Join(p.data, JournalFileName)
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.state, LogFileName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome expands a leading ~ in path.
func ExpandHome(path string) string {
	return expandHome(path)
}
