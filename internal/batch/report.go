package batch

import (
	"time"

	"github.com/wolfvue/wolfvue-go/internal/observation"
)

// State is the orchestrator's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// Report collects the per-file records of one batch run in processing
// order. It is owned by the orchestrator for the run's lifetime and reset
// at the start of each new run; entries are append-only.
type Report struct {
	RunID      string
	InputDir   string
	OutputDir  string
	TotalFiles int
	StartedAt  time.Time
	FinishedAt time.Time
	State      State
	Entries    []observation.Record
}

// append adds one record. Only the orchestrator's worker calls this.
func (r *Report) append(record observation.Record) {
	r.Entries = append(r.Entries, record)
}

// Done returns the number of files fully processed.
func (r *Report) Done() int {
	return len(r.Entries)
}
