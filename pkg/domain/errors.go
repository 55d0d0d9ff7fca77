package domain

import "errors"

// ErrServiceNotFound is returned when a named service is unknown to the registry.
var ErrServiceNotFound = errors.New("service does not exist")

// ErrRunlevelNotFound is returned when a named runlevel is unknown to the registry.
var ErrRunlevelNotFound = errors.New("runlevel does not exist")

// ErrNotAMember is returned by membership removal when the service was not
// in the runlevel to begin with. Adapters must report this condition
// distinctly from other removal failures.
var ErrNotAMember = errors.New("service is not in the runlevel")

// ErrNoCurrentRunlevel is returned when the registry has no current
// runlevel recorded, so the default-runlevel fallback cannot apply.
var ErrNoCurrentRunlevel = errors.New("no current runlevel")
