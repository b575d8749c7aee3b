package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/testutil"
)

func TestGateCheck(t *testing.T) {
	roleRepo := testutil.NewFakeRoleRepository()
	gate := NewGate(roleRepo)
	ctx := context.Background()

	userID := uuid.New()
	roleRepo.GrantPermissions(userID, "users.view", "login-history.view")

	t.Run("held permission", func(t *testing.T) {
		allowed, err := gate.Check(ctx, userID, "users.view")
		require.NoError(t, err)
		require.True(t, allowed)
	})

	t.Run("missing permission", func(t *testing.T) {
		allowed, err := gate.Check(ctx, userID, "users.manage")
		require.NoError(t, err)
		require.False(t, allowed)
	})

	t.Run("user with no roles", func(t *testing.T) {
		allowed, err := gate.Check(ctx, uuid.New(), "users.view")
		require.NoError(t, err)
		require.False(t, allowed)
	})
}

// Permissions accumulate across roles: granting through a second role extends
// the effective set.
func TestGateUnionAcrossRoles(t *testing.T) {
	roleRepo := testutil.NewFakeRoleRepository()
	gate := NewGate(roleRepo)
	ctx := context.Background()

	userID := uuid.New()
	roleRepo.GrantPermissions(userID, "users.view")
	roleRepo.GrantPermissions(userID, "roles.view")

	for _, perm := range []string{"users.view", "roles.view"} {
		allowed, err := gate.Check(ctx, userID, perm)
		require.NoError(t, err)
		require.True(t, allowed, "permission %s should be held", perm)
	}
}
