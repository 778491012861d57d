// Package storage holds the process-wide values earlier installer jobs hand
// to this one ("global storage"), loaded from a YAML document.
package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/logging"
	"github.com/arthur-debert/packops/pkg/types"
)

// Keys read by the packages job.
const (
	KeyOnlineInstall     = "isOnlineInstall"
	KeyHasInternet       = "hasInternet"
	KeyLocale            = "locale"
	KeyPackageOperations = "packageOperations"
	KeyRootMountPoint    = "rootMountPoint"
)

// Store is a flat key/value view of shared storage.
type Store struct {
	values map[string]interface{}
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]interface{})}
}

// Load reads a YAML mapping from path. A missing file yields an empty
// store. packageOperations is decoded with its key order preserved.
func Load(path string) (*Store, error) {
	logger := logging.GetLogger("storage")
	s := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No shared storage file, starting empty")
			return s, nil
		}
		return nil, errors.Wrap(err, errors.ErrStorageLoad, "read storage").WithDetail("path", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrStorageLoad, "parse storage").WithDetail("path", path)
	}
	if len(doc.Content) == 0 {
		return s, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrStorageLoad, "storage must be a mapping").WithDetail("path", path)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]

		if key == KeyPackageOperations {
			var entries []types.Entry
			if err := value.Decode(&entries); err != nil {
				return nil, errors.Wrap(err, errors.ErrStorageLoad, "decode packageOperations").WithDetail("path", path)
			}
			s.values[key] = entries
			continue
		}

		var v interface{}
		if err := value.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, errors.ErrStorageLoad, "decode %s", key).WithDetail("path", path)
		}
		s.values[key] = v
	}

	logger.Debug().Str("path", path).Int("keys", len(s.values)).Msg("Loaded shared storage")
	return s, nil
}

// Contains reports whether key is set.
func (s *Store) Contains(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Get returns the raw value of key.
func (s *Store) Get(key string) (interface{}, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *Store) Set(key string, value interface{}) {
	s.values[key] = value
}

// Bool returns key as a boolean; absent or non-boolean values are false.
func (s *Store) Bool(key string) bool {
	b, _ := s.values[key].(bool)
	return b
}

// String returns key as a string; absent values are "". Non-string scalars
// are formatted.
func (s *Store) String(key string) string {
	switch v := s.values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Locale returns the selected locale code, or "" when none was chosen.
func (s *Store) Locale() string {
	return s.String(KeyLocale)
}

// Operations returns the package operations contributed by earlier jobs.
func (s *Store) Operations() ([]types.Entry, error) {
	switch v := s.values[KeyPackageOperations].(type) {
	case nil:
		return nil, nil
	case []types.Entry:
		return v, nil
	default:
		entries, err := types.ParseEntries(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrStorageLoad, "decode packageOperations")
		}
		return entries, nil
	}
}
