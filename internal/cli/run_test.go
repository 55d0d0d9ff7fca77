package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrc-ng/rcupdate/internal/adapters/file"
	"github.com/openrc-ng/rcupdate/internal/cli"
	"github.com/openrc-ng/rcupdate/internal/config"
	"github.com/openrc-ng/rcupdate/internal/einfo"
	"github.com/openrc-ng/rcupdate/internal/update"
)

// setupFileRegistry provisions a file-backed registry in a temp dir and
// points the environment at it.
func setupFileRegistry(t *testing.T) *file.Registry {
	t.Helper()
	ctx := context.Background()

	root := t.TempDir()
	t.Setenv("RCUPDATE_ROOT", root)
	t.Setenv("RCUPDATE_CONFIG", filepath.Join(root, "missing.yaml"))

	reg := file.New(root)
	require.NoError(t, reg.AddRunlevel(ctx, "boot"))
	require.NoError(t, reg.AddRunlevel(ctx, "default"))
	require.NoError(t, reg.AddService(ctx, "sshd"))
	require.NoError(t, reg.AddMembership(ctx, "boot", "sshd"))
	return reg
}

func newRunOptions() (cli.Options, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	opts := cli.Options{
		Out:      out,
		Reporter: einfo.NewWriter(out, errOut),
	}
	return opts, out, errOut
}

func TestRun_AddThenShow(t *testing.T) {
	ctx := context.Background()
	reg := setupFileRegistry(t)

	opts, out, _ := newRunOptions()
	err := cli.Run(ctx, cli.Flags{Add: true}, []string{"sshd", "default"}, opts)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "sshd added to runlevel default")

	member, err := reg.IsMember(ctx, "sshd", "default")
	require.NoError(t, err)
	assert.True(t, member)

	opts, out, _ = newRunOptions()
	err = cli.Run(ctx, cli.Flags{Show: true}, nil, opts)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "sshd")
	assert.Contains(t, out.String(), "default")
}

func TestRun_DeleteNonMemberFails(t *testing.T) {
	ctx := context.Background()
	setupFileRegistry(t)

	opts, _, errOut := newRunOptions()
	err := cli.Run(ctx, cli.Flags{Delete: true}, []string{"sshd", "default"}, opts)
	assert.ErrorIs(t, err, update.ErrFailed)
	assert.Contains(t, errOut.String(), "service `sshd' is not in the runlevel `default'")
}

func TestRun_LegacyVerbInvocation(t *testing.T) {
	ctx := context.Background()
	reg := setupFileRegistry(t)

	opts, _, _ := newRunOptions()
	err := cli.Run(ctx, cli.Flags{}, []string{"del", "sshd", "boot"}, opts)
	require.NoError(t, err)

	member, err := reg.IsMember(ctx, "sshd", "boot")
	require.NoError(t, err)
	assert.False(t, member)
}

func TestRun_UsageErrorPerformsNoMutation(t *testing.T) {
	ctx := context.Background()
	reg := setupFileRegistry(t)

	opts, _, _ := newRunOptions()
	err := cli.Run(ctx, cli.Flags{Add: true, Delete: true}, []string{"sshd", "default"}, opts)
	require.Error(t, err)

	member, merr := reg.IsMember(ctx, "sshd", "default")
	require.NoError(t, merr)
	assert.False(t, member, "mixing commands must abort before any mutation")
}

func TestBuildRegistry_UnknownBackend(t *testing.T) {
	_, _, err := cli.BuildRegistry(&config.Config{Backend: "dynamo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}
