package roles

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maintains role memberships and the admin hierarchy between roles.
// All methods are safe for concurrent use; every mutator observes a consistent
// snapshot and commits atomically.
type Registry struct {
	mu      sync.RWMutex
	admins  map[ID]ID
	members map[ID]map[uuid.UUID]struct{}
	sink    Sink
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithSink sets the event sink for membership changes.
func WithSink(s Sink) Option {
	return func(r *Registry) { r.sink = s }
}

// WithAdmin wires role to be administered by admin. Construction-time
// hierarchy bootstrap; emits no event.
func WithAdmin(role, admin ID) Option {
	return func(r *Registry) { r.admins[role] = admin }
}

// WithMember seeds an initial membership without an authorization check.
// Construction-time bootstrap; emits no event. At least one Root member is
// normally seeded this way, otherwise top-level roles are ungovernable.
func WithMember(role ID, account uuid.UUID) Option {
	return func(r *Registry) { r.addLocked(role, account) }
}

// NewRegistry creates a Registry with the given bootstrap options applied.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		admins:  make(map[ID]ID),
		members: make(map[ID]map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HasRole reports whether account is a member of role. Pure read, never fails.
func (r *Registry) HasRole(role ID, account uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasLocked(role, account)
}

// Admin returns the role that administers role. Roles without a configured
// admin default to the Root sentinel.
func (r *Registry) Admin(role ID) ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.admins[role]
}

// RequireRole returns nil if account is a member of role, or an
// UnauthorizedError naming the account and the missing role.
func (r *Registry) RequireRole(role ID, account uuid.UUID) error {
	if !r.HasRole(role, account) {
		return &UnauthorizedError{Account: account, Role: role}
	}
	return nil
}

// Grant adds account to role. The actor must hold role's admin role.
// Granting an existing membership is a silent no-op.
func (r *Registry) Grant(actor uuid.UUID, role ID, account uuid.UUID) error {
	r.mu.Lock()
	admin := r.admins[role]
	if !r.hasLocked(admin, actor) {
		r.mu.Unlock()
		return &UnauthorizedError{Account: actor, Role: admin}
	}
	if r.hasLocked(role, account) {
		r.mu.Unlock()
		return nil
	}
	r.addLocked(role, account)
	sink := r.sink
	r.mu.Unlock()

	if sink != nil {
		sink(Event{Action: ActionGranted, Role: role, Account: account, Actor: actor})
	}
	return nil
}

// Revoke removes account from role. The actor must hold role's admin role.
// Revoking a missing membership is a silent no-op.
func (r *Registry) Revoke(actor uuid.UUID, role ID, account uuid.UUID) error {
	r.mu.Lock()
	admin := r.admins[role]
	if !r.hasLocked(admin, actor) {
		r.mu.Unlock()
		return &UnauthorizedError{Account: actor, Role: admin}
	}
	if !r.hasLocked(role, account) {
		r.mu.Unlock()
		return nil
	}
	delete(r.members[role], account)
	sink := r.sink
	r.mu.Unlock()

	if sink != nil {
		sink(Event{Action: ActionRevoked, Role: role, Account: account, Actor: actor})
	}
	return nil
}

// Renounce removes the actor's own membership of role. No admin check: a
// member may always give up their own role. A missing membership is a silent
// no-op.
func (r *Registry) Renounce(actor uuid.UUID, role ID) error {
	r.mu.Lock()
	if !r.hasLocked(role, actor) {
		r.mu.Unlock()
		return nil
	}
	delete(r.members[role], actor)
	sink := r.sink
	r.mu.Unlock()

	if sink != nil {
		sink(Event{Action: ActionRevoked, Role: role, Account: actor, Actor: actor})
	}
	return nil
}

// SetAdmin rewires role to be administered by admin, taking effect
// immediately for subsequent Grant/Revoke calls without touching existing
// memberships of role. This is a hierarchy-bootstrap operation: composed
// components call it only during their guarded setup and do not expose it on
// their public surface afterwards.
func (r *Registry) SetAdmin(role, admin ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[role] = admin
}

func (r *Registry) hasLocked(role ID, account uuid.UUID) bool {
	_, ok := r.members[role][account]
	return ok
}

func (r *Registry) addLocked(role ID, account uuid.UUID) {
	set, ok := r.members[role]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		r.members[role] = set
	}
	set[account] = struct{}{}
}

// RoleAuthority adapts a Registry and a role into a single-method authority
// check, interchangeable with other authority backends such as a delegated
// single-holder slot.
type RoleAuthority struct {
	Registry *Registry
	Role     ID
}

// Authorize returns nil if account holds the authority's role, or an
// UnauthorizedError otherwise.
func (a RoleAuthority) Authorize(account uuid.UUID) error {
	return a.Registry.RequireRole(a.Role, account)
}
