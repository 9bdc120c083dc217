package statuslist

import "github.com/google/uuid"

// Action identifies the kind of status change an Event reports.
type Action string

const (
	ActionSet     Action = "status.set"
	ActionCleared Action = "status.cleared"
	// ActionSelfSet is emitted in addition to ActionSet when an account marks
	// itself, immediately before the generic event, so observers can tell
	// self-service from delegated action while still indexing on ActionSet.
	ActionSelfSet Action = "status.self_set"
)

// Event reports a genuine flag transition. Idempotent no-op calls emit no
// event.
type Event struct {
	Action  Action
	List    string
	Account uuid.UUID
	Actor   uuid.UUID
}

// Sink receives events after the corresponding state change has committed.
// A nil sink disables event delivery.
type Sink func(Event)
