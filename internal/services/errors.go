package services

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to the route layer. Handlers recover these
// into flash messages, redirects, or terminal responses; nothing else
// leaks past the service boundary as a user-visible condition.
var (
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrUnknownEmail       = errors.New("no user with this email exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateTitle     = errors.New("a post with this title already exists")
	ErrPostNotFound       = errors.New("post not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError reports which field of a submitted form failed
// validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is invalid: %s", e.Field, e.Reason)
}
