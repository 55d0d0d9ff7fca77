package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openrc-ng/rcupdate/internal/adapters/file"
	"github.com/openrc-ng/rcupdate/internal/update"
	"github.com/openrc-ng/rcupdate/pkg/ports"
)

// debounce coalesces bursts of filesystem events into one re-render.
const debounce = 200 * time.Millisecond

// RunWatch renders the membership table and re-renders it whenever the
// registry directories change, until the context is cancelled. Only the
// file backend can be watched.
func RunWatch(ctx context.Context, reg ports.Registry, logger *slog.Logger, out io.Writer, inv Invocation) error {
	freg, ok := reg.(*file.Registry)
	if !ok {
		return errors.New("--watch requires the file backend")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := []string{
		filepath.Join(freg.Root(), "init.d"),
		freg.RunlevelsDir(),
	}
	for _, runlevel := range inv.Runlevels {
		dirs = append(dirs, filepath.Join(freg.RunlevelsDir(), runlevel))
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	render := func() error {
		return update.Show(ctx, reg, out, inv.Runlevels, inv.Verbose)
	}
	if err := render(); err != nil {
		return err
	}

	logger.Info("watching registry", "root", freg.Root())

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			logger.Debug("registry changed", "path", event.Name, "op", event.Op.String())
			// A new runlevel directory must be watched too.
			if event.Op&fsnotify.Create != 0 && filepath.Dir(event.Name) == freg.RunlevelsDir() {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			pending = time.After(debounce)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", watchErr)

		case <-pending:
			pending = nil
			fmt.Fprintln(out)
			if err := render(); err != nil {
				return err
			}
		}
	}
}
