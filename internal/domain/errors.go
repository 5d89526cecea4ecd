package domain

import "errors"

// Sentinel errors shared by services, repositories and delivery.
var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrConcurrencyConflict is returned when a guarded write lost a race with a concurrent request.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrPersistence is returned when the unit of work could not be committed.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidTransition is returned when an invitation is moved out of a terminal status.
	ErrInvalidTransition = errors.New("invalid invitation status transition")
	// ErrUnauthorized is returned when a bearer token cannot be verified.
	ErrUnauthorized = errors.New("unauthorized")
)

// Validation messages returned by GatheringFactory.
const (
	MsgMissingTypeParameter = "missing required parameter for selected gathering type"
	MsgUnsupportedType      = "unsupported gathering type"
)

// ValidationError reports rejected creation input. No state is mutated when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a *ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
