// Package update implements the core of rcupdate: applying a single
// membership mutation, orchestrating it across a batch of runlevels, and
// rendering the service/runlevel membership table.
package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/openrc-ng/rcupdate/internal/einfo"
	"github.com/openrc-ng/rcupdate/pkg/domain"
	"github.com/openrc-ng/rcupdate/pkg/ports"
)

// Apply performs one action for one service against one runlevel and
// reports the result as a tri-state outcome. Exactly one status line is
// emitted per call: info on success, warning on a no-op, error on failure.
func Apply(ctx context.Context, reg ports.Registry, rep *einfo.Reporter, action domain.Action, runlevel, service string) domain.Outcome {
	switch action {
	case domain.ActionAdd:
		return applyAdd(ctx, reg, rep, runlevel, service)
	case domain.ActionDelete:
		return applyDelete(ctx, reg, rep, runlevel, service)
	default:
		err := fmt.Errorf("invalid action %q", action)
		rep.Errorf("%v", err)
		return domain.Failed(err)
	}
}

func applyAdd(ctx context.Context, reg ports.Registry, rep *einfo.Reporter, runlevel, service string) domain.Outcome {
	exists, err := reg.ServiceExists(ctx, service)
	if err != nil {
		rep.Errorf("failed to add service `%s' to runlevel `%s': %v", service, runlevel, err)
		return domain.Failed(err)
	}
	if !exists {
		rep.Errorf("service `%s' does not exist", service)
		return domain.Failed(domain.ErrServiceNotFound)
	}

	member, err := reg.IsMember(ctx, service, runlevel)
	if err != nil {
		rep.Errorf("failed to add service `%s' to runlevel `%s': %v", service, runlevel, err)
		return domain.Failed(err)
	}
	if member {
		rep.Warnf("%s already installed in runlevel `%s'; skipping", service, runlevel)
		return domain.NoOp()
	}

	if err := reg.AddMembership(ctx, runlevel, service); err != nil {
		rep.Errorf("failed to add service `%s' to runlevel `%s': %v", service, runlevel, err)
		return domain.Failed(err)
	}
	rep.Infof("%s added to runlevel %s", service, runlevel)
	return domain.Applied()
}

func applyDelete(ctx context.Context, reg ports.Registry, rep *einfo.Reporter, runlevel, service string) domain.Outcome {
	err := reg.RemoveMembership(ctx, runlevel, service)
	switch {
	case err == nil:
		rep.Infof("%s removed from runlevel %s", service, runlevel)
		return domain.Applied()
	case errors.Is(err, domain.ErrNotAMember):
		rep.Errorf("service `%s' is not in the runlevel `%s'", service, runlevel)
		return domain.Failed(err)
	default:
		rep.Errorf("failed to remove service `%s' from runlevel `%s': %v", service, runlevel, err)
		return domain.Failed(err)
	}
}
