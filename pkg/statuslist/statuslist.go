package statuslist

import (
	"sync"

	"github.com/google/uuid"
)

// Semantics selects how a list's flag is interpreted by guard checks.
type Semantics int

const (
	// Denylist blocks accounts whose flag is set.
	Denylist Semantics = iota
	// Allowlist blocks accounts whose flag is not set.
	Allowlist
)

// Authority authorizes an account to mutate a list. Both a role-membership
// registry and a delegated single-holder slot satisfy it, so the two
// strategies are interchangeable behind the same guard contract.
type Authority interface {
	// Authorize returns nil if account may act, or an error naming the
	// account and the missing authority.
	Authorize(account uuid.UUID) error
}

// List maintains one boolean status flag per account. All methods are safe
// for concurrent use; every mutator observes a consistent snapshot, commits
// atomically, and fails without side effects.
type List struct {
	mu          sync.RWMutex
	name        string
	semantics   Semantics
	authority   Authority
	flags       map[uuid.UUID]struct{}
	selfService bool
	sink        Sink
}

// Option configures a List at construction.
type Option func(*List)

// WithSink sets the event sink for flag transitions.
func WithSink(s Sink) Option {
	return func(l *List) { l.sink = s }
}

// WithSelfService lets any account mark itself via SelfSet, bypassing the
// authority check. Only meaningful for deny-flavored lists.
func WithSelfService() Option {
	return func(l *List) { l.selfService = true }
}

// New creates a List with the given name, semantics, and mutation authority.
// Panics if authority is nil - miswiring should prevent startup rather than
// cause runtime errors.
func New(name string, semantics Semantics, authority Authority, opts ...Option) *List {
	if authority == nil {
		panic("statuslist: authority cannot be nil")
	}

	l := &List{
		name:      name,
		semantics: semantics,
		authority: authority,
		flags:     make(map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the list's name as used in events and errors.
func (l *List) Name() string { return l.name }

// Semantics returns how the list's flag is interpreted by Check.
func (l *List) Semantics() Semantics { return l.semantics }

// Contains reports whether account's flag is set. Pure read, never fails.
func (l *List) Contains(account uuid.UUID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.flags[account]
	return ok
}

// Check is the guard precondition for protected operations: it returns a
// DeniedError if a deny-flavored list contains the account, a NotAllowedError
// if an allow-flavored list does not, and nil otherwise. Callers evaluate it
// before any state mutation.
func (l *List) Check(account uuid.UUID) error {
	flagged := l.Contains(account)
	switch l.semantics {
	case Denylist:
		if flagged {
			return &DeniedError{List: l.name, Account: account}
		}
	case Allowlist:
		if !flagged {
			return &NotAllowedError{List: l.name, Account: account}
		}
	}
	return nil
}

// Set marks account. The actor must pass the list's authority check. Setting
// an already-set flag is a silent no-op with no event.
func (l *List) Set(actor, account uuid.UUID) error {
	if err := l.authority.Authorize(actor); err != nil {
		return err
	}
	if changed := l.set(account); changed {
		l.emit(Event{Action: ActionSet, List: l.name, Account: account, Actor: actor})
	}
	return nil
}

// Clear unmarks account. The actor must pass the list's authority check.
// Clearing an already-clear flag is a silent no-op with no event.
func (l *List) Clear(actor, account uuid.UUID) error {
	if err := l.authority.Authorize(actor); err != nil {
		return err
	}

	l.mu.Lock()
	if _, ok := l.flags[account]; !ok {
		l.mu.Unlock()
		return nil
	}
	delete(l.flags, account)
	l.mu.Unlock()

	l.emit(Event{Action: ActionCleared, List: l.name, Account: account, Actor: actor})
	return nil
}

// SelfSet marks the actor's own account without an authority check. Fails
// with ErrSelfServiceDisabled unless the list enables self-service. On a
// genuine transition it emits the self-service event followed by the generic
// set event; a repeat call emits neither.
func (l *List) SelfSet(actor uuid.UUID) error {
	if !l.selfService {
		return ErrSelfServiceDisabled
	}
	if changed := l.set(actor); changed {
		l.emit(Event{Action: ActionSelfSet, List: l.name, Account: actor, Actor: actor})
		l.emit(Event{Action: ActionSet, List: l.name, Account: actor, Actor: actor})
	}
	return nil
}

func (l *List) set(account uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.flags[account]; ok {
		return false
	}
	l.flags[account] = struct{}{}
	return true
}

func (l *List) emit(e Event) {
	if l.sink != nil {
		l.sink(e)
	}
}
