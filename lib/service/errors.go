package service

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an operation that requires a session
// is invoked without one.
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError rejects malformed input before any store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError rejects a status change that is not in the payment
// state machine.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}
