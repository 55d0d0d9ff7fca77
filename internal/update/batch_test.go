package update_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrc-ng/rcupdate/internal/update"
	"github.com/openrc-ng/rcupdate/pkg/domain"
)

func TestRun_PartialAddAcrossRunlevels(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	rep, out, _ := newReporter()

	// sshd is already in boot but not in default: exactly one Applied and
	// one NoOp, overall success.
	err := update.Run(ctx, reg, rep, domain.ActionAdd, "sshd", []string{"boot", "default"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "already installed in runlevel `boot'")
	assert.Contains(t, out.String(), "sshd added to runlevel default")
}

func TestRun_UnknownRunlevelIsSkipped(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	rep, out, errOut := newReporter()

	// The bogus runlevel is reported but the batch continues and succeeds.
	err := update.Run(ctx, reg, rep, domain.ActionAdd, "sshd", []string{"bogus", "default"})
	require.NoError(t, err)

	assert.Contains(t, errOut.String(), "runlevel `bogus' does not exist")
	assert.Contains(t, out.String(), "sshd added to runlevel default")

	member, merr := reg.IsMember(ctx, "sshd", "default")
	require.NoError(t, merr)
	assert.True(t, member)
}

func TestRun_FailureInOneRunlevelFailsTheBatch(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	rep, _, errOut := newReporter()

	// Deleting from default fails (not a member) while deleting from boot
	// succeeds; the batch still completes but reports failure.
	err := update.Run(ctx, reg, rep, domain.ActionDelete, "sshd", []string{"default", "boot"})
	assert.ErrorIs(t, err, update.ErrFailed)
	assert.Contains(t, errOut.String(), "service `sshd' is not in the runlevel `default'")

	member, merr := reg.IsMember(ctx, "sshd", "boot")
	require.NoError(t, merr)
	assert.False(t, member, "the boot delete must still have run")
}

func TestRun_CurrentRunlevelFallback(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	require.NoError(t, reg.SetCurrentRunlevel(ctx, "default"))

	rep, out, _ := newReporter()
	err := update.Run(ctx, reg, rep, domain.ActionAdd, "sshd", nil)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "sshd added to runlevel default")
}

func TestRun_NoRunlevelsAndNoCurrent(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	rep, _, _ := newReporter()

	// No runlevels given and none current: fatal, nothing updated.
	err := update.Run(ctx, reg, rep, domain.ActionAdd, "sshd", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoCurrentRunlevel)

	member, merr := reg.IsMember(ctx, "sshd", "default")
	require.NoError(t, merr)
	assert.False(t, member)
}

func TestRun_DeleteNothingEmitsAdvisory(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	rep, out, _ := newReporter()

	// Deleting from an unknown runlevel only: zero applied, no failure,
	// so the not-found advisory fires.
	err := update.Run(ctx, reg, rep, domain.ActionDelete, "sshd", []string{"bogus"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "service `sshd' not found in any of the specified runlevels")
}
