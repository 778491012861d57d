// Package progress tracks units of work for one job invocation and forwards
// the completed fraction to a Sink.
package progress

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/packops/pkg/logging"
)

// Sink receives progress fractions in [0,1].
type Sink interface {
	SetProgress(fraction float64)
}

// StatusSink is implemented by sinks that also display the status text.
type StatusSink interface {
	SetStatus(status string)
}

// State is the progress of one job invocation. It is not safe for
// concurrent use; the job runs strictly sequentially.
type State struct {
	Total     int
	Completed int
	Status    string

	sink   Sink
	logger zerolog.Logger
}

// New returns a State reporting to sink. A nil sink discards reports.
func New(sink Sink) *State {
	if sink == nil {
		sink = Discard
	}
	return &State{
		sink:   sink,
		logger: logging.GetLogger("progress"),
	}
}

// Reset starts a new count of total units.
func (s *State) Reset(total int) {
	s.Total = total
	s.Completed = 0
}

// SetStatus records the human-readable description of the current action.
func (s *State) SetStatus(status string) {
	s.Status = status
	s.logger.Debug().Str("status", status).Msg("Status changed")
	if ss, ok := s.sink.(StatusSink); ok {
		ss.SetStatus(status)
	}
}

// Set forwards a fraction directly to the sink, bypassing the unit count.
func (s *State) Set(fraction float64) {
	s.sink.SetProgress(clamp(fraction))
}

// Report credits units and reports Completed/Total. Nothing is reported
// while Total is zero.
func (s *State) Report(credit int) {
	if s.Total <= 0 {
		return
	}

	s.Completed += credit
	if s.Completed > s.Total {
		s.logger.Warn().
			Int("completed", s.Completed).
			Int("total", s.Total).
			Msg("Progress credit exceeds total, clamping")
		s.Completed = s.Total
	}

	fraction := s.Fraction()
	s.logger.Debug().
		Str("status", s.Status).
		Float64("progress", fraction).
		Msg("Setting progress")
	s.sink.SetProgress(fraction)
}

// Discount removes n units that will never be attempted from Total.
func (s *State) Discount(n int) {
	if n <= 0 {
		return
	}
	s.Total -= n
	if s.Total < s.Completed {
		s.Total = s.Completed
	}
}

// Fraction returns Completed/Total, or 0 when Total is zero.
func (s *State) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
