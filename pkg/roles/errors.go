package roles

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// UnauthorizedError indicates that an account lacks the role required for the
// attempted operation.
type UnauthorizedError struct {
	Account uuid.UUID
	Role    ID
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("roles: account %s is missing role %s", e.Account, e.Role)
}

// IsUnauthorizedError reports whether err wraps an UnauthorizedError.
func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}
