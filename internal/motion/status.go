package motion

import "time"

// Outcome classifies how a session ended.
type Outcome int

const (
	// OutcomeCompleted means the session ran to a natural end.
	OutcomeCompleted Outcome = iota
	// OutcomeCanceled means the session was stopped by cancellation.
	OutcomeCanceled
	// OutcomeFailed means the session aborted on an unrecoverable error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusKind discriminates Status events.
type StatusKind int

const (
	// StatusCountdown reports startup-delay progress.
	StatusCountdown StatusKind = iota
	// StatusRunning marks the transition from countdown to live motion.
	StatusRunning
	// StatusStopped is the terminal event, carrying the session outcome.
	StatusStopped
)

// Status is a progress event emitted on the loop's optional status channel.
// Remaining and Total are set for countdown events; Outcome for stopped
// events.
type Status struct {
	Kind      StatusKind
	Remaining time.Duration
	Total     time.Duration
	Outcome   Outcome
}
