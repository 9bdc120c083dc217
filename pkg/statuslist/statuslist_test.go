package statuslist_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/statuslist"
)

// allowAll authorizes everything; denyAll authorizes nothing.
type allowAll struct{}

func (allowAll) Authorize(uuid.UUID) error { return nil }

type denyAll struct{ err error }

func (d denyAll) Authorize(uuid.UUID) error { return d.err }

// onlyAccount authorizes exactly one account, mimicking a single-holder slot.
type onlyAccount struct {
	account uuid.UUID
	err     error
}

func (o onlyAccount) Authorize(account uuid.UUID) error {
	if account != o.account {
		return o.err
	}
	return nil
}

func TestNew_NilAuthorityPanics(t *testing.T) {
	assert.Panics(t, func() {
		statuslist.New("blocklist", statuslist.Denylist, nil)
	})
}

func TestList_SetClear(t *testing.T) {
	account := uuid.New()
	manager := uuid.New()

	t.Run("set and clear flip the flag", func(t *testing.T) {
		list := statuslist.New("blocklist", statuslist.Denylist, allowAll{})

		assert.False(t, list.Contains(account))
		require.NoError(t, list.Set(manager, account))
		assert.True(t, list.Contains(account))
		require.NoError(t, list.Clear(manager, account))
		assert.False(t, list.Contains(account))
	})

	t.Run("idempotent set emits one event", func(t *testing.T) {
		var events []statuslist.Event
		list := statuslist.New("blocklist", statuslist.Denylist, allowAll{},
			statuslist.WithSink(func(e statuslist.Event) { events = append(events, e) }))

		require.NoError(t, list.Set(manager, account))
		require.NoError(t, list.Set(manager, account))

		require.Len(t, events, 1)
		assert.Equal(t, statuslist.ActionSet, events[0].Action)
		assert.Equal(t, "blocklist", events[0].List)
		assert.Equal(t, account, events[0].Account)
		assert.Equal(t, manager, events[0].Actor)
	})

	t.Run("idempotent clear emits no event", func(t *testing.T) {
		var events []statuslist.Event
		list := statuslist.New("blocklist", statuslist.Denylist, allowAll{},
			statuslist.WithSink(func(e statuslist.Event) { events = append(events, e) }))

		require.NoError(t, list.Clear(manager, account))
		assert.Empty(t, events)

		require.NoError(t, list.Set(manager, account))
		require.NoError(t, list.Clear(manager, account))
		require.NoError(t, list.Clear(manager, account))

		require.Len(t, events, 2)
		assert.Equal(t, statuslist.ActionCleared, events[1].Action)
	})

	t.Run("unauthorized mutation leaves state untouched", func(t *testing.T) {
		authErr := assert.AnError
		var events []statuslist.Event
		list := statuslist.New("blocklist", statuslist.Denylist, denyAll{err: authErr},
			statuslist.WithSink(func(e statuslist.Event) { events = append(events, e) }))

		assert.ErrorIs(t, list.Set(manager, account), authErr)
		assert.ErrorIs(t, list.Clear(manager, account), authErr)
		assert.False(t, list.Contains(account))
		assert.Empty(t, events)
	})
}

func TestList_Check(t *testing.T) {
	account := uuid.New()
	manager := uuid.New()

	t.Run("denylist blocks listed accounts", func(t *testing.T) {
		list := statuslist.New("blocklist", statuslist.Denylist, allowAll{})

		require.NoError(t, list.Check(account))

		require.NoError(t, list.Set(manager, account))
		err := list.Check(account)
		assert.True(t, statuslist.IsDeniedError(err))

		var denied *statuslist.DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "blocklist", denied.List)
		assert.Equal(t, account, denied.Account)

		require.NoError(t, list.Clear(manager, account))
		require.NoError(t, list.Check(account))
	})

	t.Run("allowlist blocks unlisted accounts", func(t *testing.T) {
		list := statuslist.New("whitelist", statuslist.Allowlist, allowAll{})

		err := list.Check(account)
		assert.True(t, statuslist.IsNotAllowedError(err))

		var notAllowed *statuslist.NotAllowedError
		require.ErrorAs(t, err, &notAllowed)
		assert.Equal(t, account, notAllowed.Account)

		require.NoError(t, list.Set(manager, account))
		require.NoError(t, list.Check(account))

		require.NoError(t, list.Clear(manager, account))
		assert.True(t, statuslist.IsNotAllowedError(list.Check(account)))
	})
}

func TestList_SelfSet(t *testing.T) {
	account := uuid.New()

	t.Run("disabled by default", func(t *testing.T) {
		list := statuslist.New("blocklist", statuslist.Denylist, denyAll{err: assert.AnError})
		assert.ErrorIs(t, list.SelfSet(account), statuslist.ErrSelfServiceDisabled)
		assert.False(t, list.Contains(account))
	})

	t.Run("bypasses the authority check", func(t *testing.T) {
		list := statuslist.New("blocklist", statuslist.Denylist, denyAll{err: assert.AnError},
			statuslist.WithSelfService())

		require.NoError(t, list.SelfSet(account))
		assert.True(t, list.Contains(account))
	})

	t.Run("emits self event then generic event, once", func(t *testing.T) {
		var events []statuslist.Event
		list := statuslist.New("blocklist", statuslist.Denylist, allowAll{},
			statuslist.WithSelfService(),
			statuslist.WithSink(func(e statuslist.Event) { events = append(events, e) }))

		require.NoError(t, list.SelfSet(account))
		require.Len(t, events, 2)
		assert.Equal(t, statuslist.ActionSelfSet, events[0].Action)
		assert.Equal(t, statuslist.ActionSet, events[1].Action)
		assert.Equal(t, account, events[0].Account)
		assert.Equal(t, account, events[0].Actor)

		// Repeat call emits neither event.
		require.NoError(t, list.SelfSet(account))
		assert.Len(t, events, 2)
	})
}

func TestList_SingleHolderAuthority(t *testing.T) {
	holder := uuid.New()
	stranger := uuid.New()
	account := uuid.New()

	list := statuslist.New("whitelist", statuslist.Allowlist,
		onlyAccount{account: holder, err: assert.AnError})

	assert.ErrorIs(t, list.Set(stranger, account), assert.AnError)
	assert.False(t, list.Contains(account))

	require.NoError(t, list.Set(holder, account))
	assert.True(t, list.Contains(account))
}

func TestList_Accessors(t *testing.T) {
	list := statuslist.New("whitelist", statuslist.Allowlist, allowAll{})
	assert.Equal(t, "whitelist", list.Name())
	assert.Equal(t, statuslist.Allowlist, list.Semantics())
}
