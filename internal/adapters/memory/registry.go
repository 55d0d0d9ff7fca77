// Package memory provides an in-memory Registry, used by tests and as a
// scratch backend for dry runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/openrc-ng/rcupdate/pkg/domain"
)

// Registry implements ports.Registry and ports.Provisioner with plain maps.
// Safe for concurrent use. Listing order is insertion order.
type Registry struct {
	mu        sync.RWMutex
	services  []string
	runlevels []string
	members   map[string]map[string]bool
	current   string
}

// New creates an empty in-memory registry.
func New() *Registry {
	return &Registry{
		members: make(map[string]map[string]bool),
	}
}

// AddService registers a service. Idempotent.
func (r *Registry) AddService(ctx context.Context, service string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.services, service) {
		r.services = append(r.services, service)
	}
	return nil
}

// AddRunlevel registers a runlevel. Idempotent.
func (r *Registry) AddRunlevel(ctx context.Context, runlevel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.runlevels, runlevel) {
		r.runlevels = append(r.runlevels, runlevel)
		r.members[runlevel] = make(map[string]bool)
	}
	return nil
}

// SetCurrentRunlevel records the current runlevel marker.
func (r *Registry) SetCurrentRunlevel(ctx context.Context, runlevel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = runlevel
	return nil
}

func (r *Registry) ServiceExists(ctx context.Context, service string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.services, service), nil
}

func (r *Registry) RunlevelExists(ctx context.Context, runlevel string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.runlevels, runlevel), nil
}

func (r *Registry) IsMember(ctx context.Context, service, runlevel string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[runlevel][service], nil
}

func (r *Registry) AddMembership(ctx context.Context, runlevel, service string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[runlevel]
	if !ok {
		return domain.ErrRunlevelNotFound
	}
	set[service] = true
	return nil
}

func (r *Registry) RemoveMembership(ctx context.Context, runlevel, service string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[runlevel]
	if !ok || !set[service] {
		return domain.ErrNotAMember
	}
	delete(set, service)
	return nil
}

func (r *Registry) ListServices(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.services), nil
}

func (r *Registry) ListRunlevels(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.runlevels), nil
}

func (r *Registry) CurrentRunlevel(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == "" {
		return "", domain.ErrNoCurrentRunlevel
	}
	return r.current, nil
}
