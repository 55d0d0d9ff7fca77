package ports

import "context"

// Registry is the component of record for services, runlevels, and their
// memberships. rcupdate never owns this data; it only queries and requests
// mutations through this interface.
//
// Adapters translate backend-specific conditions into the sentinel errors
// in pkg/domain: RemoveMembership returns domain.ErrNotAMember when the
// membership did not exist, and CurrentRunlevel returns
// domain.ErrNoCurrentRunlevel when none is recorded.
type Registry interface {
	// ServiceExists reports whether the named service is known.
	ServiceExists(ctx context.Context, service string) (bool, error)

	// RunlevelExists reports whether the named runlevel is known.
	RunlevelExists(ctx context.Context, runlevel string) (bool, error)

	// IsMember reports whether the service belongs to the runlevel.
	IsMember(ctx context.Context, service, runlevel string) (bool, error)

	// AddMembership records the service as a member of the runlevel.
	AddMembership(ctx context.Context, runlevel, service string) error

	// RemoveMembership removes the service from the runlevel.
	RemoveMembership(ctx context.Context, runlevel, service string) error

	// ListServices returns every known service, in registry order.
	ListServices(ctx context.Context) ([]string, error)

	// ListRunlevels returns every known runlevel, in registry order.
	ListRunlevels(ctx context.Context) ([]string, error)

	// CurrentRunlevel returns the runlevel the system is currently in.
	CurrentRunlevel(ctx context.Context) (string, error)
}

// Provisioner is implemented by registries that can also create services,
// runlevels, and the current-runlevel marker. rcupdate itself never
// provisions; this is used by system setup tooling and the contract tests.
type Provisioner interface {
	AddService(ctx context.Context, service string) error
	AddRunlevel(ctx context.Context, runlevel string) error
	SetCurrentRunlevel(ctx context.Context, runlevel string) error
}
