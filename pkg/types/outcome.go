package types

import "time"

// Outcome status values.
const (
	StatusInstalled = "installed"
	StatusRemoved   = "removed"
	StatusFailed    = "failed"
	StatusDropped   = "dropped"
)

// Outcome is what happened to one package item during a run.
type Outcome struct {
	Time    time.Time
	Backend string
	Action  string
	Package string
	Status  string
	Error   string
}

// Failed reports whether the outcome records a failure.
func (o Outcome) Failed() bool { return o.Status == StatusFailed }
