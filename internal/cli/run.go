package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/openrc-ng/rcupdate/internal/adapters/file"
	"github.com/openrc-ng/rcupdate/internal/adapters/redis"
	"github.com/openrc-ng/rcupdate/internal/config"
	"github.com/openrc-ng/rcupdate/internal/einfo"
	"github.com/openrc-ng/rcupdate/internal/logging"
	"github.com/openrc-ng/rcupdate/internal/update"
	"github.com/openrc-ng/rcupdate/pkg/domain"
	"github.com/openrc-ng/rcupdate/pkg/ports"
)

// Options carries the non-action command line switches.
type Options struct {
	ConfigPath string
	Debug      bool
	Watch      bool

	// Out receives the membership table; defaults to os.Stdout.
	Out io.Writer
	// Reporter overrides the status-line reporter; defaults to einfo.New().
	Reporter *einfo.Reporter
}

// Run interprets the command line and executes the resolved action against
// the configured registry. The returned error drives the exit status; all
// per-runlevel diagnostics have already been reported by the time it
// returns.
func Run(ctx context.Context, flags Flags, args []string, opts Options) error {
	logger := createLogger(opts.Debug)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	reg, closeReg, err := BuildRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeReg()
	logger.Debug("registry ready", "backend", cfg.Backend)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	rep := opts.Reporter
	if rep == nil {
		rep = einfo.New()
	}

	inv, err := Interpret(ctx, reg, flags, args)
	if err != nil {
		return err
	}
	logger.Debug("command interpreted",
		"action", inv.Action.String(),
		"service", inv.Service,
		"runlevels", inv.Runlevels,
	)

	switch inv.Action {
	case domain.ActionShow:
		if opts.Watch {
			return RunWatch(ctx, reg, logger, out, inv)
		}
		return update.Show(ctx, reg, out, inv.Runlevels, inv.Verbose)
	case domain.ActionAdd, domain.ActionDelete:
		return update.Run(ctx, reg, rep, inv.Action, inv.Service, inv.Runlevels)
	default:
		return fmt.Errorf("invalid action %q", inv.Action)
	}
}

// BuildRegistry constructs the registry backend selected by the config and
// returns it with a close function.
func BuildRegistry(cfg *config.Config) (ports.Registry, func() error, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return file.New(cfg.File.Root), func() error { return nil }, nil
	case config.BackendRedis:
		opts := []redis.Option{}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		reg := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return reg, reg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// createLogger configures the application logger. Diagnostics go to stderr
// only in debug mode; user-facing status lines always go through einfo.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
