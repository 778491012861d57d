package style

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/packops/pkg/types"
)

// OutcomeStyle returns the pterm style used for an outcome status in tables
func OutcomeStyle(status string) *pterm.Style {
	switch status {
	case types.StatusInstalled:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case types.StatusRemoved:
		return pterm.NewStyle(pterm.FgCyan)
	case types.StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	case types.StatusDropped:
		return pterm.NewStyle(pterm.FgMagenta)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// OutcomeIndicator returns the one-character marker of an outcome status
func OutcomeIndicator(status string) string {
	switch status {
	case types.StatusInstalled, types.StatusRemoved:
		return SuccessIndicator
	case types.StatusFailed:
		return ErrorIndicator
	case types.StatusDropped:
		return PendingIndicator
	default:
		return InfoIndicator
	}
}
