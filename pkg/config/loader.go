package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/types"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "PACKOPS_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load layers defaults, the file at path (skipped when path is empty) and
// the environment, then validates the result.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}

	// 2. Job config file
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			code := errors.ErrConfigParse
			if isNotExist(path) {
				code = errors.ErrConfigLoad
			}
			return nil, errors.Wrapf(err, code, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded job configuration")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 5. Operations
	ops, err := loadOperations(k, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid operations").WithDetail("path", path)
	}
	cfg.Operations = ops

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required keys.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend) == "" {
		return errors.New(errors.ErrConfigValid, "backend is required")
	}
	return nil
}

// envKey maps PACKOPS_PACMAN_WRAPPER__LIVE_USER to pacman_wrapper.live_user.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml", ".conf":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

func isNotExist(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

// loadOperations decodes the operations list. YAML files are decoded again
// node by node so that tags keep their written order; other sources go
// through the generic map form, where tags are sorted.
func loadOperations(k *koanf.Koanf, path string) ([]types.Entry, error) {
	if path != "" && isYAML(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var doc struct {
			Operations []types.Entry `yaml:"operations"`
		}
		if err := yamlv3.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Operations, nil
	}
	return types.ParseEntries(k.Get("operations"))
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".conf":
		return true
	}
	return false
}
