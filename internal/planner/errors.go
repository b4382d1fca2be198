package planner

import "errors"

var (
	// ErrMissingField rejects a task or auth submission with an empty required field.
	ErrMissingField = errors.New("required field is empty")
	// ErrInvalidCredentials is the generic login mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrIllegalTransition is returned when a trigger has no edge from the current view.
	ErrIllegalTransition = errors.New("illegal view transition")
)
