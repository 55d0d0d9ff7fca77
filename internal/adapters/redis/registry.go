// Package redis provides a Registry backed by Redis, for fleets that keep
// runlevel membership in a shared store instead of the local filesystem.
package redis

import (
	"context"
	"fmt"
	"sort"

	backend "github.com/redis/go-redis/v9"

	"github.com/openrc-ng/rcupdate/pkg/domain"
)

// Registry implements ports.Registry and ports.Provisioner on Redis sets:
// one set of known services, one of known runlevels, one membership set per
// runlevel, and a plain key for the current runlevel.
type Registry struct {
	client *backend.Client
	prefix string
}

type Option func(*Registry)

// WithPrefix sets the key prefix. The default is "rc:".
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		r.prefix = prefix
	}
}

// New creates a Redis registry with options.
func New(address, password string, db int, opts ...Option) *Registry {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis registry from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Registry {
	reg := &Registry{
		client: client,
		prefix: "rc:",
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

func (r *Registry) servicesKey() string  { return r.prefix + "services" }
func (r *Registry) runlevelsKey() string { return r.prefix + "runlevels" }
func (r *Registry) softlevelKey() string { return r.prefix + "softlevel" }

func (r *Registry) memberKey(runlevel string) string {
	return r.prefix + "runlevel:" + runlevel
}

func (r *Registry) ServiceExists(ctx context.Context, service string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.servicesKey(), service).Result()
	if err != nil {
		return false, fmt.Errorf("failed to query service: %w", err)
	}
	return ok, nil
}

func (r *Registry) RunlevelExists(ctx context.Context, runlevel string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.runlevelsKey(), runlevel).Result()
	if err != nil {
		return false, fmt.Errorf("failed to query runlevel: %w", err)
	}
	return ok, nil
}

func (r *Registry) IsMember(ctx context.Context, service, runlevel string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.memberKey(runlevel), service).Result()
	if err != nil {
		return false, fmt.Errorf("failed to query membership: %w", err)
	}
	return ok, nil
}

func (r *Registry) AddMembership(ctx context.Context, runlevel, service string) error {
	if err := r.client.SAdd(ctx, r.memberKey(runlevel), service).Err(); err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

func (r *Registry) RemoveMembership(ctx context.Context, runlevel, service string) error {
	removed, err := r.client.SRem(ctx, r.memberKey(runlevel), service).Result()
	if err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	if removed == 0 {
		return domain.ErrNotAMember
	}
	return nil
}

func (r *Registry) ListServices(ctx context.Context) ([]string, error) {
	return r.sortedMembers(ctx, r.servicesKey())
}

func (r *Registry) ListRunlevels(ctx context.Context) ([]string, error) {
	return r.sortedMembers(ctx, r.runlevelsKey())
}

func (r *Registry) CurrentRunlevel(ctx context.Context) (string, error) {
	current, err := r.client.Get(ctx, r.softlevelKey()).Result()
	if err != nil {
		if err == backend.Nil {
			return "", domain.ErrNoCurrentRunlevel
		}
		return "", fmt.Errorf("failed to get current runlevel: %w", err)
	}
	return current, nil
}

// AddService registers a service name.
func (r *Registry) AddService(ctx context.Context, service string) error {
	if err := r.client.SAdd(ctx, r.servicesKey(), service).Err(); err != nil {
		return fmt.Errorf("failed to add service: %w", err)
	}
	return nil
}

// AddRunlevel registers a runlevel name.
func (r *Registry) AddRunlevel(ctx context.Context, runlevel string) error {
	if err := r.client.SAdd(ctx, r.runlevelsKey(), runlevel).Err(); err != nil {
		return fmt.Errorf("failed to add runlevel: %w", err)
	}
	return nil
}

// SetCurrentRunlevel records the current runlevel marker.
func (r *Registry) SetCurrentRunlevel(ctx context.Context, runlevel string) error {
	if err := r.client.Set(ctx, r.softlevelKey(), runlevel, 0).Err(); err != nil {
		return fmt.Errorf("failed to set current runlevel: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (r *Registry) Close() error {
	return r.client.Close()
}

// sortedMembers returns set members in a stable order; Redis sets are
// unordered, so the registry order here is lexicographic.
func (r *Registry) sortedMembers(ctx context.Context, key string) ([]string, error) {
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", key, err)
	}
	sort.Strings(members)
	return members, nil
}
