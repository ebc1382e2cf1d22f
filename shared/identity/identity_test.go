package identity_test

import (
	"context"
	"net/http"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/shared/identity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	caller := identity.Caller{UserID: "u-1", Email: "ana@example.com", Role: constant.RoleUser}

	got, err := identity.FromContext(identity.WithCaller(context.Background(), caller))
	require.NoError(t, err)
	assert.Equal(t, caller, got)
	assert.False(t, got.IsAdmin())

	_, err = identity.FromContext(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, identity.Caller{UserID: "a", Role: constant.RoleAdmin}.RequireAdmin())
	assert.ErrorIs(t, identity.Caller{UserID: "b", Role: constant.RoleUser}.RequireAdmin(), failure.ErrAdminRequired)
	assert.True(t, identity.System.IsAdmin())
}
