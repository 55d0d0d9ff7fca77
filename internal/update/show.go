package update

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/openrc-ng/rcupdate/pkg/ports"
)

// Show writes the membership table for the given runlevels to w. Every
// service the registry knows is considered, in registry order; a row is
// written only when the service belongs to at least one requested runlevel,
// unless verbose is set. Per column the runlevel name marks membership and
// a blank field of the same width marks absence, so columns stay aligned.
func Show(ctx context.Context, reg ports.Registry, w io.Writer, runlevels []string, verbose bool) error {
	services, err := reg.ListServices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	for _, service := range services {
		columns := make([]string, 0, len(runlevels))
		inAny := false

		for _, runlevel := range runlevels {
			member, err := reg.IsMember(ctx, service, runlevel)
			if err != nil {
				return fmt.Errorf("failed to query membership of `%s' in `%s': %w", service, runlevel, err)
			}
			if member {
				columns = append(columns, runlevel)
				inAny = true
			} else {
				columns = append(columns, strings.Repeat(" ", len(runlevel)))
			}
		}

		if !inAny && !verbose {
			continue
		}

		fmt.Fprintf(w, " %20s |", service)
		for _, column := range columns {
			fmt.Fprintf(w, " %s", column)
		}
		fmt.Fprintln(w)
	}

	return nil
}
