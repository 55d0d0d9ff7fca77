package domain

// Status classifies the result of applying one action to one runlevel.
type Status int

const (
	// StatusApplied means the registry mutation happened.
	StatusApplied Status = iota
	// StatusNoOp means nothing needed to change (e.g. the service was
	// already installed in the runlevel). Not an error.
	StatusNoOp
	// StatusFailed means the mutation could not be performed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusNoOp:
		return "noop"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the per-(runlevel, service) result of one mutation attempt.
// Err is set only when Status is StatusFailed, so callers can never
// conflate "no-op" with "error".
type Outcome struct {
	Status Status
	Err    error
}

// Applied reports a completed registry mutation.
func Applied() Outcome { return Outcome{Status: StatusApplied} }

// NoOp reports that the requested state already held.
func NoOp() Outcome { return Outcome{Status: StatusNoOp} }

// Failed reports a mutation failure with its cause.
func Failed(err error) Outcome { return Outcome{Status: StatusFailed, Err: err} }
