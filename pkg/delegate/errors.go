package delegate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotOwnerError indicates that an account other than the slot's owner tried
// to change the holder.
type NotOwnerError struct {
	Capability string
	Account    uuid.UUID
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("delegate: account %s does not own capability %q", e.Account, e.Capability)
}

// IsNotOwnerError reports whether err wraps a NotOwnerError.
func IsNotOwnerError(err error) bool {
	var e *NotOwnerError
	return errors.As(err, &e)
}

// UnauthorizedHolderError indicates that an account is not the current holder
// of the capability required for the attempted operation.
type UnauthorizedHolderError struct {
	Capability string
	Account    uuid.UUID
}

func (e *UnauthorizedHolderError) Error() string {
	return fmt.Sprintf("delegate: account %s does not hold capability %q", e.Account, e.Capability)
}

// IsUnauthorizedHolderError reports whether err wraps an UnauthorizedHolderError.
func IsUnauthorizedHolderError(err error) bool {
	var e *UnauthorizedHolderError
	return errors.As(err, &e)
}
