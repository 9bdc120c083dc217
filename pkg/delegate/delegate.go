package delegate

import (
	"sync"

	"github.com/google/uuid"
)

// Event reports a genuine holder change. Idempotent no-op calls emit no
// event.
type Event struct {
	Capability string
	Holder     uuid.UUID
	Previous   uuid.UUID
	Actor      uuid.UUID
}

// Sink receives events after the corresponding state change has committed.
// A nil sink disables event delivery.
type Sink func(Event)

// Slot holds at most one account as the holder of a named capability. The
// owner is fixed at construction; only the owner may change the holder. All
// methods are safe for concurrent use.
type Slot struct {
	mu         sync.RWMutex
	capability string
	owner      uuid.UUID
	holder     uuid.UUID
	sink       Sink
}

// Option configures a Slot at construction.
type Option func(*Slot)

// WithSink sets the event sink for holder changes.
func WithSink(s Sink) Option {
	return func(sl *Slot) { sl.sink = s }
}

// WithHolder seeds the initial holder. Construction-time bootstrap; emits no
// event.
func WithHolder(holder uuid.UUID) Option {
	return func(sl *Slot) { sl.holder = holder }
}

// New creates a Slot for the named capability, owned by owner and with no
// holder. Panics on a nil owner - an ownerless slot could never be
// administered.
func New(capability string, owner uuid.UUID, opts ...Option) *Slot {
	if owner == uuid.Nil {
		panic("delegate: owner cannot be nil")
	}

	sl := &Slot{
		capability: capability,
		owner:      owner,
	}
	for _, opt := range opts {
		opt(sl)
	}
	return sl
}

// Capability returns the slot's capability name.
func (s *Slot) Capability() string { return s.capability }

// Owner returns the fixed owner account.
func (s *Slot) Owner() uuid.UUID { return s.owner }

// Holder returns the current holder, or uuid.Nil if nobody holds the
// capability.
func (s *Slot) Holder() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holder
}

// SetHolder hands the capability to holder. Only the owner may call it;
// handing the capability to the current holder is a silent no-op with no
// event. Passing uuid.Nil clears the slot.
func (s *Slot) SetHolder(actor, holder uuid.UUID) error {
	if actor != s.owner {
		return &NotOwnerError{Capability: s.capability, Account: actor}
	}

	s.mu.Lock()
	if s.holder == holder {
		s.mu.Unlock()
		return nil
	}
	previous := s.holder
	s.holder = holder
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		sink(Event{Capability: s.capability, Holder: holder, Previous: previous, Actor: actor})
	}
	return nil
}

// Authorize returns nil if account is the current holder, or an
// UnauthorizedHolderError otherwise. It satisfies the same authority contract
// as a role-membership check.
func (s *Slot) Authorize(account uuid.UUID) error {
	s.mu.RLock()
	holder := s.holder
	s.mu.RUnlock()

	if account == uuid.Nil || account != holder {
		return &UnauthorizedHolderError{Capability: s.capability, Account: account}
	}
	return nil
}
