package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/openrc-ng/rcupdate/internal/einfo"
	"github.com/openrc-ng/rcupdate/pkg/domain"
	"github.com/openrc-ng/rcupdate/pkg/ports"
)

// ErrFailed is returned by Run when at least one runlevel could not be
// updated. Individual failures are already reported by the executor; this
// only drives the process exit status.
var ErrFailed = errors.New("not all runlevels were updated")

// Run applies the action for the service across the runlevels in order.
//
// An unknown runlevel is reported and skipped without aborting the batch or
// failing it; remaining runlevels are still processed. The batch fails iff
// at least one mutation attempt yielded a Failed outcome. When a delete
// succeeds overall but removed nothing, an advisory warning is emitted.
//
// With an empty runlevel set the registry's current runlevel is used; if
// none is recorded, no update is possible and Run fails without touching
// anything.
func Run(ctx context.Context, reg ports.Registry, rep *einfo.Reporter, action domain.Action, service string, runlevels []string) error {
	if len(runlevels) == 0 {
		current, err := reg.CurrentRunlevel(ctx)
		if err != nil {
			return fmt.Errorf("no runlevels found: %w", err)
		}
		runlevels = []string{current}
	}

	applied := 0
	failed := false
	for _, runlevel := range runlevels {
		exists, err := reg.RunlevelExists(ctx, runlevel)
		if err != nil {
			rep.Errorf("runlevel `%s': %v", runlevel, err)
			failed = true
			continue
		}
		if !exists {
			rep.Errorf("runlevel `%s' does not exist", runlevel)
			continue
		}

		switch Apply(ctx, reg, rep, action, runlevel, service).Status {
		case domain.StatusApplied:
			applied++
		case domain.StatusFailed:
			failed = true
		}
	}

	if !failed && applied == 0 && action == domain.ActionDelete {
		rep.Warnf("service `%s' not found in any of the specified runlevels", service)
	}

	if failed {
		return ErrFailed
	}
	return nil
}
