package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Keys of the structured package item form.
const (
	keyPackage    = "package"
	keyPreScript  = "pre-script"
	keyPostScript = "post-script"
)

// PackageItem is a single package reference. It is either a bare name
// (Simple) or a name carrying pre/post hook scripts (WithHooks).
type PackageItem struct {
	Name       string
	PreScript  string
	PostScript string

	hooks bool
}

// Simple returns a bare-name item.
func Simple(name string) PackageItem {
	return PackageItem{Name: name}
}

// WithHooks returns a structured item. Empty scripts are no-ops.
func WithHooks(name, pre, post string) PackageItem {
	return PackageItem{Name: name, PreScript: pre, PostScript: post, hooks: true}
}

// PackageName returns the effective package name for either shape.
func (p PackageItem) PackageName() string { return p.Name }

// HasHooks reports whether the item was given in the structured form.
func (p PackageItem) HasHooks() bool { return p.hooks }

// WithName returns a copy of the item with its name replaced.
func (p PackageItem) WithName(name string) PackageItem {
	p.Name = name
	return p
}

// String returns the display name.
func (p PackageItem) String() string { return p.Name }

// Value converts the item back to its configuration form: a string or a map.
func (p PackageItem) Value() interface{} {
	if !p.hooks {
		return p.Name
	}
	return map[string]interface{}{
		keyPackage:    p.Name,
		keyPreScript:  p.PreScript,
		keyPostScript: p.PostScript,
	}
}

// UnmarshalYAML accepts a scalar name or a mapping with package/pre-script/post-script.
func (p *PackageItem) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = Simple(node.Value)
		return nil
	case yaml.MappingNode:
		var raw struct {
			Package    string `yaml:"package"`
			PreScript  string `yaml:"pre-script"`
			PostScript string `yaml:"post-script"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		if raw.Package == "" {
			return fmt.Errorf("line %d: package item is missing %q", node.Line, keyPackage)
		}
		*p = WithHooks(raw.Package, raw.PreScript, raw.PostScript)
		return nil
	default:
		return fmt.Errorf("line %d: package item must be a name or a mapping", node.Line)
	}
}

// MarshalYAML writes the item back in its configuration form.
func (p PackageItem) MarshalYAML() (interface{}, error) {
	return p.Value(), nil
}

// ParsePackageItem converts a generically decoded value (string or map) to a PackageItem.
func ParsePackageItem(v interface{}) (PackageItem, error) {
	switch t := v.(type) {
	case string:
		return Simple(t), nil
	case map[string]interface{}:
		name, err := stringField(t, keyPackage)
		if err != nil {
			return PackageItem{}, err
		}
		if name == "" {
			return PackageItem{}, fmt.Errorf("package item is missing %q", keyPackage)
		}
		pre, err := stringField(t, keyPreScript)
		if err != nil {
			return PackageItem{}, err
		}
		post, err := stringField(t, keyPostScript)
		if err != nil {
			return PackageItem{}, err
		}
		return WithHooks(name, pre, post), nil
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(t))
		for k, val := range t {
			converted[fmt.Sprint(k)] = val
		}
		return ParsePackageItem(converted)
	default:
		return PackageItem{}, fmt.Errorf("package item must be a name or a mapping, got %T", v)
	}
}

func stringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", key, v)
	}
	return s, nil
}
