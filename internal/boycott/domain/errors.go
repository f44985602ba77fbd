package domain

import "errors"

// Sentinel errors shared across repositories and use cases.
var (
	// ErrConflict is returned by repositories when a conditional write
	// loses a uniqueness race. Ledgers translate it into the matching
	// business error before it reaches a caller.
	ErrConflict = errors.New("storage conflict: uniqueness key already claimed")

	// ErrAlreadyVoted means the user already submitted a ballot this week.
	ErrAlreadyVoted = errors.New("already voted this week")

	// ErrAlreadyLiked means the user already liked this product this week.
	ErrAlreadyLiked = errors.New("already liked this product this week")

	// ErrProductNotFound means the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError reports malformed caller input. The message is safe to
// show to end users verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a caller-safe message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
