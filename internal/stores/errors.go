package stores

import "errors"

// ValidationError reports malformed or conflicting user input. Its message is
// safe to surface to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationError(message string) error {
	return &ValidationError{Message: message}
}

var (
	// ErrInvalidCredentials is returned by Login when no account matches
	// both email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotAuthenticated is returned by operations that require an active
	// session.
	ErrNotAuthenticated = errors.New("not authenticated")
)
