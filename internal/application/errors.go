package application

import "errors"

var (
	// ErrUserNotFound maps to 404: the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidOTP covers a missing ledger entry, a code mismatch, and an
	// expired code; callers are told only "Invalid or expired OTP".
	ErrInvalidOTP = errors.New("invalid or expired OTP")
	// ErrUnauthorized maps to 401: the operation requires a resolved caller.
	ErrUnauthorized = errors.New("authentication required")
)

// ValidationError reports malformed caller input with a human-readable message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
