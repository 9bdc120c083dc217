package roles

import "github.com/google/uuid"

// Action identifies the kind of membership change an Event reports.
type Action string

const (
	ActionGranted Action = "role.granted"
	ActionRevoked Action = "role.revoked"
)

// Event reports a genuine membership change. Idempotent no-op calls emit no
// event, so observers can rely on one event per state transition.
type Event struct {
	Action  Action
	Role    ID
	Account uuid.UUID
	// Actor is the account that triggered the change. For a renounced role
	// the actor and the account are the same.
	Actor uuid.UUID
}

// Sink receives events after the corresponding state change has committed.
// A nil sink disables event delivery.
type Sink func(Event)
