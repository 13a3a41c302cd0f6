package reducerx

import "errors"

var (
	// ErrNotStateMachine is returned when a transition probe is given a
	// reference that is neither machine-backed nor deferred.
	ErrNotStateMachine = errors.New("reference given to transition probe must be a state machine instance")

	// ErrInvalidEvent is returned when a candidate event cannot be normalized.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidMachine wraps machine builder validation failures.
	ErrInvalidMachine = errors.New("invalid machine")

	ErrServiceStopped  = errors.New("service stopped")
	ErrAlreadyResolved = errors.New("deferred reference already resolved")
)
