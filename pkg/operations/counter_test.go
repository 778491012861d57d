package operations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/packops/pkg/operations"
	"github.com/arthur-debert/packops/pkg/types"
)

func items(names ...string) []types.PackageItem {
	out := make([]types.PackageItem, 0, len(names))
	for _, n := range names {
		out = append(out, types.Simple(n))
	}
	return out
}

func entry(actions ...types.Action) types.Entry {
	return types.Entry{Actions: actions}
}

func TestCountUnits(t *testing.T) {
	entries := []types.Entry{
		entry(
			types.Action{Tag: types.ActionInstall, Items: items("a", "b")},
			types.Action{Tag: types.ActionSource, Source: "netinstall"},
		),
		entry(
			types.Action{Tag: types.ActionTryInstall, Items: items("c")},
			types.Action{Tag: types.ActionRemove, Items: items("d")},
			types.Action{Tag: types.ActionTryRemove, Items: items("e", "f")},
			types.Action{Tag: types.ActionLocalInstall, Items: items("/tmp/g.pkg.tar.zst")},
			types.Action{Tag: "upgrade"},
		),
	}
	assert.Equal(t, 7, operations.CountUnits(entries))
}

func TestCountUnits_CountsUnsubstitutedItems(t *testing.T) {
	entries := []types.Entry{
		entry(types.Action{Tag: types.ActionInstall, Items: items("firefox-i18n-$LOCALE", "vim")}),
	}
	assert.Equal(t, 2, operations.CountUnits(entries))
}

func TestCountUnits_Empty(t *testing.T) {
	assert.Equal(t, 0, operations.CountUnits(nil))
	assert.Equal(t, 0, operations.CountUnits([]types.Entry{entry()}))
}
