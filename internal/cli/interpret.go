package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/openrc-ng/rcupdate/internal/einfo"
	"github.com/openrc-ng/rcupdate/pkg/domain"
	"github.com/openrc-ng/rcupdate/pkg/ports"
)

// ErrUsage signals that no action could be resolved from the command line.
// The caller shows usage help and exits unsuccessfully.
var ErrUsage = errors.New("no command given")

// Flags mirrors the action flags of the command line.
type Flags struct {
	Add    bool
	Delete bool
	Show   bool
}

// Invocation is the immutable result of interpreting one command line.
// It is constructed once and passed by value into the orchestrator and
// renderer; nothing mutates it afterwards.
type Invocation struct {
	Action    domain.Action
	Service   string
	Runlevels []string
	Verbose   bool
}

// Interpret resolves (action, service, runlevels) from the parsed flags and
// the remaining positional arguments.
//
// The action comes from an explicit flag when one is set; flags for
// different actions are mutually exclusive. Without a flag the legacy
// positional verbs add, delete (alias del) and show are accepted. The next
// positional argument names the target service, and every remaining one
// must be a registry-valid runlevel; the first invalid one aborts before
// any mutation can happen.
//
// Show keeps the legacy quirk: with no explicit runlevels a lone service
// token is reinterpreted as a runlevel filter, and a service given next to
// runlevels joins the filter set.
func Interpret(ctx context.Context, reg ports.Registry, flags Flags, args []string) (Invocation, error) {
	action := domain.ActionNone
	set := 0
	if flags.Add {
		action = domain.ActionAdd
		set++
	}
	if flags.Delete {
		action = domain.ActionDelete
		set++
	}
	if flags.Show {
		action = domain.ActionShow
		set++
	}
	if set > 1 {
		return Invocation{}, errors.New("cannot mix commands")
	}

	rest := args
	if action == domain.ActionNone {
		if len(rest) == 0 {
			return Invocation{}, ErrUsage
		}
		switch rest[0] {
		case "add":
			action = domain.ActionAdd
		case "delete", "del":
			action = domain.ActionDelete
		case "show":
			action = domain.ActionShow
		default:
			return Invocation{}, fmt.Errorf("invalid command `%s'", rest[0])
		}
		rest = rest[1:]
	}

	inv := Invocation{
		Action:  action,
		Verbose: einfo.Verbose(),
	}

	if len(rest) > 0 {
		inv.Service = rest[0]
		for _, runlevel := range rest[1:] {
			exists, err := reg.RunlevelExists(ctx, runlevel)
			if err != nil {
				return Invocation{}, fmt.Errorf("runlevel `%s': %w", runlevel, err)
			}
			if !exists {
				return Invocation{}, fmt.Errorf("`%s' is not a valid runlevel", runlevel)
			}
			inv.Runlevels = append(inv.Runlevels, runlevel)
		}
	}

	if action == domain.ActionShow {
		if inv.Service != "" {
			inv.Runlevels = append(inv.Runlevels, inv.Service)
			inv.Service = ""
		}
		if len(inv.Runlevels) == 0 {
			runlevels, err := reg.ListRunlevels(ctx)
			if err != nil {
				return Invocation{}, fmt.Errorf("failed to list runlevels: %w", err)
			}
			inv.Runlevels = runlevels
		}
		return inv, nil
	}

	if inv.Service == "" {
		return Invocation{}, errors.New("no service specified")
	}
	return inv, nil
}
