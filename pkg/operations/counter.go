package operations

import (
	"github.com/arthur-debert/packops/pkg/types"
)

// CountUnits returns the number of package items across every package
// action of entries, before locale substitution. The source tag and unknown
// tags count zero.
func CountUnits(entries []types.Entry) int {
	total := 0
	for _, entry := range entries {
		for _, action := range entry.Actions {
			if types.IsPackageAction(action.Tag) {
				total += len(action.Items)
			}
		}
	}
	return total
}
