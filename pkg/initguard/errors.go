package initguard

import (
	"errors"
	"fmt"
)

// Predefined errors for setup phase violations.
var (
	// ErrAlreadyInitialized is returned when Begin is called on an instance
	// that has already completed its setup.
	ErrAlreadyInitialized = errors.New("initguard: already initialized")

	// ErrNotInitializing is returned when a setup step or Complete is invoked
	// outside an active setup sequence.
	ErrNotInitializing = errors.New("initguard: not initializing")
)

// LayerDoneError indicates that a layer's one-time setup step has already run.
type LayerDoneError struct {
	Layer string
}

func (e *LayerDoneError) Error() string {
	return fmt.Sprintf("initguard: layer %q already initialized", e.Layer)
}

// IsLayerDoneError reports whether err wraps a LayerDoneError.
func IsLayerDoneError(err error) bool {
	var e *LayerDoneError
	return errors.As(err, &e)
}
