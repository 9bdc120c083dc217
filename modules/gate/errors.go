package gate

import "errors"

// Predefined errors for the gate module.
var (
	// ErrNotReady is returned by every operation invoked before Init has
	// completed.
	ErrNotReady = errors.New("gate: not initialized")

	// ErrNoActor is returned when no acting account is available in the
	// request context.
	ErrNoActor = errors.New("gate: no acting account in context")
)
