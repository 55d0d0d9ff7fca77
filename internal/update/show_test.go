package update_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrc-ng/rcupdate/internal/update"
)

func TestShow_MembersOnly(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	require.NoError(t, reg.AddService(ctx, "local"))

	var buf bytes.Buffer
	require.NoError(t, update.Show(ctx, reg, &buf, []string{"default", "boot"}, false))

	// sshd is in boot only: its row carries a blank default column and the
	// boot name. local is in nothing and is omitted without verbose.
	want := fmt.Sprintf(" %20s | %s %s\n", "sshd", strings.Repeat(" ", len("default")), "boot")
	assert.Equal(t, want, buf.String())
}

func TestShow_VerboseIncludesNonMembers(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	require.NoError(t, reg.AddService(ctx, "local"))

	var buf bytes.Buffer
	require.NoError(t, update.Show(ctx, reg, &buf, []string{"default"}, true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "verbose must include every known service")

	// All-blank membership columns keep the table aligned.
	assert.Equal(t, fmt.Sprintf(" %20s | %s", "sshd", strings.Repeat(" ", len("default"))), lines[0])
	assert.Equal(t, fmt.Sprintf(" %20s | %s", "local", strings.Repeat(" ", len("default"))), lines[1])
}

func TestShow_ColumnOrderFollowsRequest(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	require.NoError(t, reg.AddMembership(ctx, "default", "sshd"))

	var buf bytes.Buffer
	require.NoError(t, update.Show(ctx, reg, &buf, []string{"boot", "default"}, false))
	assert.Equal(t, fmt.Sprintf(" %20s | boot default\n", "sshd"), buf.String())

	buf.Reset()
	require.NoError(t, update.Show(ctx, reg, &buf, []string{"default", "boot"}, false))
	assert.Equal(t, fmt.Sprintf(" %20s | default boot\n", "sshd"), buf.String())
}

func TestShow_NoRunlevelColumns(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	var buf bytes.Buffer
	require.NoError(t, update.Show(ctx, reg, &buf, nil, false))
	assert.Empty(t, buf.String(), "without columns no service is a member of anything")

	require.NoError(t, update.Show(ctx, reg, &buf, nil, true))
	assert.Equal(t, fmt.Sprintf(" %20s |\n", "sshd"), buf.String())
}
