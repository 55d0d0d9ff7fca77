package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openrc-ng/rcupdate/pkg/domain"
)

func TestOutcomeConstructors(t *testing.T) {
	assert.Equal(t, domain.StatusApplied, domain.Applied().Status)
	assert.NoError(t, domain.Applied().Err)

	assert.Equal(t, domain.StatusNoOp, domain.NoOp().Status)
	assert.NoError(t, domain.NoOp().Err)

	cause := errors.New("boom")
	failed := domain.Failed(cause)
	assert.Equal(t, domain.StatusFailed, failed.Status)
	assert.ErrorIs(t, failed.Err, cause)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "add", domain.ActionAdd.String())
	assert.Equal(t, "delete", domain.ActionDelete.String())
	assert.Equal(t, "show", domain.ActionShow.String())
	assert.Equal(t, "none", domain.ActionNone.String())
}
