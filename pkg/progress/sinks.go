package progress

import (
	"math"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(fraction float64)

// SetProgress calls f.
func (f SinkFunc) SetProgress(fraction float64) { f(fraction) }

// Discard ignores every report.
var Discard Sink = SinkFunc(func(float64) {})

// MultiSink fans reports out to several sinks.
type MultiSink []Sink

// SetProgress forwards fraction to every sink.
func (m MultiSink) SetProgress(fraction float64) {
	for _, s := range m {
		s.SetProgress(fraction)
	}
}

// SetStatus forwards status to every sink that displays it.
func (m MultiSink) SetStatus(status string) {
	for _, s := range m {
		if ss, ok := s.(StatusSink); ok {
			ss.SetStatus(status)
		}
	}
}

// LogSink writes each report as an info log line.
type LogSink struct {
	Logger zerolog.Logger
}

// SetProgress logs fraction as a percentage.
func (l LogSink) SetProgress(fraction float64) {
	l.Logger.Info().
		Float64("fraction", fraction).
		Str("percent", pterm.Sprintf("%.0f%%", fraction*100)).
		Msg("Progress")
}

// barSteps is the resolution of the terminal progress bar.
const barSteps = 1000

// BarSink renders progress as a pterm progress bar.
type BarSink struct {
	bar     *pterm.ProgressbarPrinter
	current int
}

// NewBarSink starts a progress bar with the given title.
func NewBarSink(title string) (*BarSink, error) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(barSteps).
		WithTitle(title).
		WithShowCount(false).
		WithShowPercentage(true).
		Start()
	if err != nil {
		return nil, err
	}
	return &BarSink{bar: bar}, nil
}

// SetProgress moves the bar to fraction. The bar never moves backwards.
func (b *BarSink) SetProgress(fraction float64) {
	target := int(math.Round(clamp(fraction) * barSteps))
	if target > b.current {
		b.bar.Add(target - b.current)
		b.current = target
	}
}

// SetStatus shows status as the bar title.
func (b *BarSink) SetStatus(status string) {
	b.bar.UpdateTitle(status)
}

// Stop finishes rendering.
func (b *BarSink) Stop() {
	_, _ = b.bar.Stop()
}
