// Package locale rewrites locale-templated package names.
//
// Names may carry the placeholder $LOCALE or ${LOCALE}. For any locale other
// than "en" the placeholder is replaced with the locale code. For "en" (or no
// locale at all) names mentioning LOCALE are dropped: they have no English
// variant.
package locale

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/packops/pkg/types"
)

// Default is used when no locale has been selected.
const Default = "en"

// Placeholder is the template parameter substituted into package names.
const Placeholder = "LOCALE"

// placeholderPattern matches $$, $name and ${name}.
var placeholderPattern = regexp.MustCompile(`\$(?:(\$)|([_a-zA-Z][_a-zA-Z0-9]*)|\{([_a-zA-Z][_a-zA-Z0-9]*)\})`)

// Substitute returns the items that survive localization, in order, with
// their names rewritten. Hook scripts of structured items are kept.
func Substitute(items []types.PackageItem, loc string) []types.PackageItem {
	if loc == "" {
		loc = Default
	}

	out := make([]types.PackageItem, 0, len(items))
	for _, item := range items {
		name := item.PackageName()
		if loc != Default {
			name = Expand(name, map[string]string{Placeholder: loc})
		} else if strings.Contains(name, Placeholder) {
			continue
		}
		out = append(out, item.WithName(name))
	}
	return out
}

// Expand substitutes $name and ${name} parameters found in params. Unknown
// parameters and malformed placeholders are left untouched, $$ yields $.
func Expand(s string, params map[string]string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		switch {
		case groups[1] != "":
			return "$"
		case groups[2] != "":
			if v, ok := params[groups[2]]; ok {
				return v
			}
		case groups[3] != "":
			if v, ok := params[groups[3]]; ok {
				return v
			}
		}
		return match
	})
}
