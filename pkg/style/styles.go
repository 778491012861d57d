package style

import (
	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	TitleStyle    = fg(HeadingColor).Bold(true).MarginBottom(1)
	SubtitleStyle = fg(HeadingColor).Bold(true)
	MutedStyle    = fg(MutedColor)

	SuccessStyle = fg(SuccessColor).Bold(true)
	ErrorStyle   = fg(ErrorColor).Bold(true)
	WarningStyle = fg(WarningColor).Bold(true)
	InfoStyle    = fg(InfoColor)

	// Package names and commands
	CodeStyle = fg(AccentColor).Background(SurfaceColor).Padding(0, 1)
	PathStyle = fg(MutedColor).Italic(true)

	InstalledStyle = fg(InstalledColor).Bold(true)
	RemovedStyle   = fg(RemovedColor).Bold(true)
	DroppedStyle   = fg(DroppedColor)
)

// Indicators prefix one-line results.
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
	PendingIndicator = MutedStyle.Render("○")
)

// Failure renders a job failure as a red title followed by its detail.
func Failure(title, detail string) string {
	if detail == "" {
		return ErrorStyle.Render(title)
	}
	return ErrorStyle.Render(title+":") + " " + detail
}
