// Package file provides the filesystem Registry, laid out the way OpenRC
// keeps its state: a service exists when a script is present under
// <root>/init.d, membership is a marker under <root>/runlevels/<runlevel>,
// and the current runlevel is recorded in <root>/softlevel.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/openrc-ng/rcupdate/pkg/domain"
)

const (
	initDir      = "init.d"
	runlevelsDir = "runlevels"
	softlevel    = "softlevel"
)

// Registry implements ports.Registry and ports.Provisioner on a directory
// tree. All writes go through renameio so a crash can never leave a
// half-written marker behind.
type Registry struct {
	root string
}

// New creates a filesystem registry rooted at root. If root is empty, it
// defaults to "/etc".
func New(root string) *Registry {
	if root == "" {
		root = "/etc"
	}
	return &Registry{root: root}
}

// Root returns the registry's base directory. The watch mode uses it to
// pick the directories to observe.
func (r *Registry) Root() string {
	return r.root
}

// RunlevelsDir returns the directory holding per-runlevel membership
// markers.
func (r *Registry) RunlevelsDir() string {
	return filepath.Join(r.root, runlevelsDir)
}

func (r *Registry) servicePath(service string) string {
	return filepath.Join(r.root, initDir, service)
}

func (r *Registry) runlevelPath(runlevel string) string {
	return filepath.Join(r.root, runlevelsDir, runlevel)
}

func (r *Registry) memberPath(runlevel, service string) string {
	return filepath.Join(r.root, runlevelsDir, runlevel, service)
}

func (r *Registry) ServiceExists(ctx context.Context, service string) (bool, error) {
	return exists(r.servicePath(service))
}

func (r *Registry) RunlevelExists(ctx context.Context, runlevel string) (bool, error) {
	return exists(r.runlevelPath(runlevel))
}

func (r *Registry) IsMember(ctx context.Context, service, runlevel string) (bool, error) {
	return exists(r.memberPath(runlevel, service))
}

// AddMembership writes a membership marker whose content points back at the
// service script, mirroring the symlinks OpenRC plants in its runlevel
// directories.
func (r *Registry) AddMembership(ctx context.Context, runlevel, service string) error {
	target := r.servicePath(service) + "\n"
	if err := renameio.WriteFile(r.memberPath(runlevel, service), []byte(target), 0o644); err != nil {
		return fmt.Errorf("failed to write membership marker: %w", err)
	}
	return nil
}

func (r *Registry) RemoveMembership(ctx context.Context, runlevel, service string) error {
	err := os.Remove(r.memberPath(runlevel, service))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return domain.ErrNotAMember
	}
	return fmt.Errorf("failed to remove membership marker: %w", err)
}

func (r *Registry) ListServices(ctx context.Context) ([]string, error) {
	return listDir(filepath.Join(r.root, initDir))
}

func (r *Registry) ListRunlevels(ctx context.Context) ([]string, error) {
	return listDir(filepath.Join(r.root, runlevelsDir))
}

func (r *Registry) CurrentRunlevel(ctx context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.root, softlevel))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNoCurrentRunlevel
		}
		return "", fmt.Errorf("failed to read softlevel: %w", err)
	}
	current := strings.TrimSpace(string(data))
	if current == "" {
		return "", domain.ErrNoCurrentRunlevel
	}
	return current, nil
}

// AddService installs an empty service script stub. Real systems put their
// init scripts here; the stub only marks existence for provisioning tools
// and tests.
func (r *Registry) AddService(ctx context.Context, service string) error {
	if err := os.MkdirAll(filepath.Join(r.root, initDir), 0o755); err != nil {
		return fmt.Errorf("failed to ensure init.d directory: %w", err)
	}
	if err := renameio.WriteFile(r.servicePath(service), []byte("#!/sbin/openrc-run\n"), 0o755); err != nil {
		return fmt.Errorf("failed to write service script: %w", err)
	}
	return nil
}

// AddRunlevel creates the runlevel's membership directory.
func (r *Registry) AddRunlevel(ctx context.Context, runlevel string) error {
	if err := os.MkdirAll(r.runlevelPath(runlevel), 0o755); err != nil {
		return fmt.Errorf("failed to create runlevel directory: %w", err)
	}
	return nil
}

// SetCurrentRunlevel records the current runlevel in the softlevel file.
func (r *Registry) SetCurrentRunlevel(ctx context.Context, runlevel string) error {
	if err := renameio.WriteFile(filepath.Join(r.root, softlevel), []byte(runlevel+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write softlevel: %w", err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}
