package roles_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/roles"
)

var (
	adminRole  = roles.Named("admin")
	editorRole = roles.Named("editors")
)

func newTestRegistry(root uuid.UUID, sink roles.Sink) *roles.Registry {
	return roles.NewRegistry(
		roles.WithMember(roles.Root, root),
		roles.WithAdmin(adminRole, roles.Root),
		roles.WithAdmin(editorRole, adminRole),
		roles.WithSink(sink),
	)
}

func TestRegistry_Grant(t *testing.T) {
	root := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	t.Run("admin member can grant", func(t *testing.T) {
		reg := newTestRegistry(root, nil)

		require.NoError(t, reg.Grant(root, adminRole, alice))
		assert.True(t, reg.HasRole(adminRole, alice))

		// alice now administers editors.
		require.NoError(t, reg.Grant(alice, editorRole, bob))
		assert.True(t, reg.HasRole(editorRole, bob))
	})

	t.Run("non-admin cannot grant", func(t *testing.T) {
		reg := newTestRegistry(root, nil)

		err := reg.Grant(alice, editorRole, bob)
		assert.True(t, roles.IsUnauthorizedError(err))
		assert.False(t, reg.HasRole(editorRole, bob))

		var unauthorized *roles.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, alice, unauthorized.Account)
		assert.Equal(t, adminRole, unauthorized.Role)
	})

	t.Run("idempotent grant emits one event", func(t *testing.T) {
		var events []roles.Event
		reg := newTestRegistry(root, func(e roles.Event) { events = append(events, e) })

		require.NoError(t, reg.Grant(root, adminRole, alice))
		require.NoError(t, reg.Grant(root, adminRole, alice))

		require.Len(t, events, 1)
		assert.Equal(t, roles.ActionGranted, events[0].Action)
		assert.Equal(t, adminRole, events[0].Role)
		assert.Equal(t, alice, events[0].Account)
		assert.Equal(t, root, events[0].Actor)
	})
}

func TestRegistry_Revoke(t *testing.T) {
	root := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	t.Run("admin member can revoke", func(t *testing.T) {
		var events []roles.Event
		reg := newTestRegistry(root, func(e roles.Event) { events = append(events, e) })

		require.NoError(t, reg.Grant(root, adminRole, alice))
		require.NoError(t, reg.Revoke(root, adminRole, alice))
		assert.False(t, reg.HasRole(adminRole, alice))

		require.Len(t, events, 2)
		assert.Equal(t, roles.ActionRevoked, events[1].Action)
		assert.Equal(t, alice, events[1].Account)
	})

	t.Run("revoking a non-member is a silent no-op", func(t *testing.T) {
		var events []roles.Event
		reg := newTestRegistry(root, func(e roles.Event) { events = append(events, e) })

		require.NoError(t, reg.Revoke(root, adminRole, alice))
		assert.Empty(t, events)
	})

	t.Run("non-admin cannot revoke", func(t *testing.T) {
		reg := newTestRegistry(root, nil)
		require.NoError(t, reg.Grant(root, adminRole, alice))

		err := reg.Revoke(bob, adminRole, alice)
		assert.True(t, roles.IsUnauthorizedError(err))
		assert.True(t, reg.HasRole(adminRole, alice))
	})
}

func TestRegistry_Renounce(t *testing.T) {
	root := uuid.New()
	alice := uuid.New()

	var events []roles.Event
	reg := newTestRegistry(root, func(e roles.Event) { events = append(events, e) })

	require.NoError(t, reg.Grant(root, adminRole, alice))

	// No admin check: alice gives up her own role.
	require.NoError(t, reg.Renounce(alice, adminRole))
	assert.False(t, reg.HasRole(adminRole, alice))

	require.Len(t, events, 2)
	assert.Equal(t, roles.ActionRevoked, events[1].Action)
	assert.Equal(t, alice, events[1].Account)
	assert.Equal(t, alice, events[1].Actor)

	// Repeat renounce is a silent no-op.
	require.NoError(t, reg.Renounce(alice, adminRole))
	assert.Len(t, events, 2)
}

func TestRegistry_SetAdmin(t *testing.T) {
	root := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	reg := newTestRegistry(root, nil)
	require.NoError(t, reg.Grant(root, adminRole, alice))
	require.NoError(t, reg.Grant(alice, editorRole, bob))

	// Rewire: editors become self-governing.
	reg.SetAdmin(editorRole, editorRole)
	assert.Equal(t, editorRole, reg.Admin(editorRole))

	// The old admin can no longer grant; an editor now can.
	assert.True(t, roles.IsUnauthorizedError(reg.Grant(alice, editorRole, carol)))
	require.NoError(t, reg.Grant(bob, editorRole, carol))

	// Existing memberships are untouched by the rewiring.
	assert.True(t, reg.HasRole(editorRole, bob))
}

func TestRegistry_RootSentinel(t *testing.T) {
	root := uuid.New()
	alice := uuid.New()

	reg := roles.NewRegistry(roles.WithMember(roles.Root, root))

	// Unconfigured roles default to the Root sentinel admin, and Root
	// administers itself.
	assert.Equal(t, roles.Root, reg.Admin(editorRole))
	assert.Equal(t, roles.Root, reg.Admin(roles.Root))

	require.NoError(t, reg.Grant(root, roles.Root, alice))
	assert.True(t, reg.HasRole(roles.Root, alice))
}

func TestRegistry_RequireRole(t *testing.T) {
	root := uuid.New()
	alice := uuid.New()

	reg := newTestRegistry(root, nil)

	assert.NoError(t, reg.RequireRole(roles.Root, root))

	err := reg.RequireRole(adminRole, alice)
	assert.True(t, roles.IsUnauthorizedError(err))
}

func TestRoleAuthority(t *testing.T) {
	root := uuid.New()
	alice := uuid.New()

	reg := newTestRegistry(root, nil)
	require.NoError(t, reg.Grant(root, adminRole, alice))

	auth := roles.RoleAuthority{Registry: reg, Role: adminRole}
	assert.NoError(t, auth.Authorize(alice))
	assert.True(t, roles.IsUnauthorizedError(auth.Authorize(root)))
}

func TestRegistry_Concurrent(t *testing.T) {
	root := uuid.New()
	reg := newTestRegistry(root, nil)

	accounts := make([]uuid.UUID, 32)
	for i := range accounts {
		accounts[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for _, acct := range accounts {
		acct := acct
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Grant(root, adminRole, acct)
			_ = reg.HasRole(adminRole, acct)
		}()
	}
	wg.Wait()

	for _, acct := range accounts {
		assert.True(t, reg.HasRole(adminRole, acct))
	}
}
