package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrc-ng/rcupdate/pkg/domain"
)

// RunRegistryContract runs a suite of tests to verify that a Registry
// implementation adheres to the defined interface contract. The registry
// must be empty when passed in and must also implement Provisioner so the
// suite can seed it.
func RunRegistryContract(t *testing.T, reg Registry) {
	ctx := context.Background()

	prov, ok := reg.(Provisioner)
	require.True(t, ok, "contract registry must implement ports.Provisioner")

	t.Run("EmptyRegistry", func(t *testing.T) {
		exists, err := reg.ServiceExists(ctx, "sshd")
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = reg.RunlevelExists(ctx, "default")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = reg.CurrentRunlevel(ctx)
		assert.ErrorIs(t, err, domain.ErrNoCurrentRunlevel)
	})

	t.Run("ProvisionAndLookup", func(t *testing.T) {
		require.NoError(t, prov.AddRunlevel(ctx, "boot"))
		require.NoError(t, prov.AddRunlevel(ctx, "default"))
		require.NoError(t, prov.AddService(ctx, "net.lo"))
		require.NoError(t, prov.AddService(ctx, "sshd"))

		exists, err := reg.ServiceExists(ctx, "sshd")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = reg.RunlevelExists(ctx, "boot")
		require.NoError(t, err)
		assert.True(t, exists)

		services, err := reg.ListServices(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"net.lo", "sshd"}, services)

		runlevels, err := reg.ListRunlevels(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"boot", "default"}, runlevels)
	})

	t.Run("Membership", func(t *testing.T) {
		member, err := reg.IsMember(ctx, "sshd", "default")
		require.NoError(t, err)
		assert.False(t, member)

		require.NoError(t, reg.AddMembership(ctx, "default", "sshd"))

		member, err = reg.IsMember(ctx, "sshd", "default")
		require.NoError(t, err)
		assert.True(t, member)

		// Membership is per runlevel.
		member, err = reg.IsMember(ctx, "sshd", "boot")
		require.NoError(t, err)
		assert.False(t, member)

		require.NoError(t, reg.RemoveMembership(ctx, "default", "sshd"))

		member, err = reg.IsMember(ctx, "sshd", "default")
		require.NoError(t, err)
		assert.False(t, member)
	})

	t.Run("RemoveNonMember", func(t *testing.T) {
		err := reg.RemoveMembership(ctx, "default", "net.lo")
		assert.ErrorIs(t, err, domain.ErrNotAMember)
	})

	t.Run("CurrentRunlevel", func(t *testing.T) {
		require.NoError(t, prov.SetCurrentRunlevel(ctx, "default"))

		current, err := reg.CurrentRunlevel(ctx)
		require.NoError(t, err)
		assert.Equal(t, "default", current)
	})
}
