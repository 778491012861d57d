package types

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Action tags recognised in an operation entry.
const (
	ActionInstall      = "install"
	ActionTryInstall   = "try_install"
	ActionRemove       = "remove"
	ActionTryRemove    = "try_remove"
	ActionLocalInstall = "localInstall"
	ActionSource       = "source"
)

// listingTags are the tags whose value is a package list.
var listingTags = map[string]bool{
	ActionInstall:      true,
	ActionTryInstall:   true,
	ActionRemove:       true,
	ActionTryRemove:    true,
	ActionLocalInstall: true,
}

// IsPackageAction reports whether tag carries a list of packages to act on.
func IsPackageAction(tag string) bool {
	return listingTags[tag]
}

// Action is one tag of an entry with its package list. For the source tag
// Source holds the informational value and Items is empty. Unknown tags keep
// only their name.
type Action struct {
	Tag    string
	Items  []PackageItem
	Source string
}

// Known reports whether the tag is one the executor understands.
func (a Action) Known() bool {
	return listingTags[a.Tag] || a.Tag == ActionSource
}

// Entry is one unit of declared work: a set of tagged package lists.
type Entry struct {
	Actions []Action
}

// Action returns the action with the given tag, if present.
func (e Entry) Action(tag string) (Action, bool) {
	for _, a := range e.Actions {
		if a.Tag == tag {
			return a, true
		}
	}
	return Action{}, false
}

// Value converts the entry back to its configuration form.
func (e Entry) Value() map[string]interface{} {
	out := make(map[string]interface{}, len(e.Actions))
	for _, a := range e.Actions {
		switch {
		case a.Tag == ActionSource:
			out[a.Tag] = a.Source
		case listingTags[a.Tag]:
			items := make([]interface{}, 0, len(a.Items))
			for _, item := range a.Items {
				items = append(items, item.Value())
			}
			out[a.Tag] = items
		}
	}
	return out
}

// UnmarshalYAML decodes a mapping of tag -> value keeping the document's key order.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: operation entry must be a mapping", node.Line)
	}

	e.Actions = nil
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		tag := key.Value

		switch {
		case listingTags[tag]:
			var items []PackageItem
			if err := value.Decode(&items); err != nil {
				return fmt.Errorf("%s: %w", tag, err)
			}
			e.Actions = append(e.Actions, Action{Tag: tag, Items: items})
		case tag == ActionSource:
			var raw interface{}
			if err := value.Decode(&raw); err != nil {
				return fmt.Errorf("%s: %w", tag, err)
			}
			e.Actions = append(e.Actions, Action{Tag: tag, Source: fmt.Sprint(raw)})
		default:
			e.Actions = append(e.Actions, Action{Tag: tag})
		}
	}
	return nil
}

// MarshalYAML writes the entry in its configuration form.
func (e Entry) MarshalYAML() (interface{}, error) {
	return e.Value(), nil
}

// ParseEntry converts a generically decoded mapping to an Entry. Map order is
// not defined, so actions are sorted by tag.
func ParseEntry(m map[string]interface{}) (Entry, error) {
	tags := make([]string, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var entry Entry
	for _, tag := range tags {
		value := m[tag]
		switch {
		case listingTags[tag]:
			items, err := parseItems(value)
			if err != nil {
				return Entry{}, fmt.Errorf("%s: %w", tag, err)
			}
			entry.Actions = append(entry.Actions, Action{Tag: tag, Items: items})
		case tag == ActionSource:
			entry.Actions = append(entry.Actions, Action{Tag: tag, Source: fmt.Sprint(value)})
		default:
			entry.Actions = append(entry.Actions, Action{Tag: tag})
		}
	}
	return entry, nil
}

// ParseEntries converts a generically decoded list of mappings to entries.
// A nil value yields no entries.
func ParseEntries(v interface{}) ([]Entry, error) {
	if v == nil {
		return nil, nil
	}

	var raw []interface{}
	switch t := v.(type) {
	case []interface{}:
		raw = t
	case []map[string]interface{}:
		for _, m := range t {
			raw = append(raw, m)
		}
	default:
		return nil, fmt.Errorf("operations must be a list, got %T", v)
	}

	entries := make([]Entry, 0, len(raw))
	for i, item := range raw {
		m, err := toStringMap(item)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		entry, err := ParseEntry(m)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseItems(v interface{}) ([]PackageItem, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("package list must be a list, got %T", v)
	}
	items := make([]PackageItem, 0, len(list))
	for _, raw := range list {
		item, err := ParsePackageItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func toStringMap(v interface{}) (map[string]interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("operation entry must be a mapping, got %T", v)
	}
}
