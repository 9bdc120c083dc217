package statuslist

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrSelfServiceDisabled is returned when SelfSet is called on a list that
// was not created with self-service enabled.
var ErrSelfServiceDisabled = errors.New("statuslist: self-service disabled")

// DeniedError indicates that a guard check failed because the account is
// present on a deny-flavored list.
type DeniedError struct {
	List    string
	Account uuid.UUID
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("statuslist: account %s is on %s", e.Account, e.List)
}

// IsDeniedError reports whether err wraps a DeniedError.
func IsDeniedError(err error) bool {
	var e *DeniedError
	return errors.As(err, &e)
}

// NotAllowedError indicates that a guard check failed because the account is
// absent from an allow-flavored list.
type NotAllowedError struct {
	List    string
	Account uuid.UUID
}

func (e *NotAllowedError) Error() string {
	return fmt.Sprintf("statuslist: account %s is not on %s", e.Account, e.List)
}

// IsNotAllowedError reports whether err wraps a NotAllowedError.
func IsNotAllowedError(err error) bool {
	var e *NotAllowedError
	return errors.As(err, &e)
}
