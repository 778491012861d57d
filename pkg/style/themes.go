package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors pick the light or dark variant from the terminal
// background.
var (
	AccentColor  = lipgloss.AdaptiveColor{Light: "#1793D1", Dark: "#4FB3E8"} // arch blue
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#F0F3F6"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#9EA7B3"}
	SurfaceColor = lipgloss.AdaptiveColor{Light: "#F6F8FA", Dark: "#22272E"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF7B72"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}

	// Package outcomes
	InstalledColor = SuccessColor
	RemovedColor   = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#38BDF8"}
	DroppedColor   = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#BC8CFF"}
)
