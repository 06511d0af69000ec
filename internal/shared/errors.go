package shared

import "errors"

var (
	// common errors
	ErrNotFound = errors.New("not found")

	// auth-specific errors
	ErrNoToken      = errors.New("no authentication token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError carries the user-facing message naming the offending field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ForbiddenError is returned when the caller is not the owner of the record
// it tries to modify. Reason goes to the response "error" key, Message to
// the "message" key.
type ForbiddenError struct {
	Reason  string
	Message string
}

func (e *ForbiddenError) Error() string { return e.Reason }
