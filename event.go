package reducerx

import (
	"fmt"
	"slices"
	"strings"
)

// Event is the value sent to machines and services. Type is the discriminant
// used for transition lookup; Payload is opaque to this package.
type Event struct {
	Type    string `json:"type" yaml:"type"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Typed is implemented by anything that carries an event discriminant.
type Typed interface {
	EventType() string
}

// NewEvent creates an Event.
func NewEvent(eventType string, payload any) Event {
	return Event{Type: eventType, Payload: payload}
}

// EventType implements Typed.
func (e Event) EventType() string { return e.Type }

// ToEvent normalizes a candidate event: a bare type string, an Event, a *Event
// or any Typed value.
func ToEvent(v any) (Event, error) {
	switch e := v.(type) {
	case Event:
		return e, nil
	case *Event:
		if e == nil {
			return Event{}, fmt.Errorf("%w: nil *Event", ErrInvalidEvent)
		}
		return *e, nil
	case string:
		return Event{Type: e}, nil
	case Typed:
		return Event{Type: e.EventType(), Payload: e}, nil
	default:
		return Event{}, fmt.Errorf("%w: %T", ErrInvalidEvent, v)
	}
}

// IsEvent reports whether e has one of the given types.
func IsEvent(e Typed, types ...string) bool {
	return slices.Contains(types, e.EventType())
}

// UnexpectedEventError is returned by ExpectEvent.
type UnexpectedEventError struct {
	Expected []string
	Got      string
}

func (e *UnexpectedEventError) Error() string {
	noun := "event"
	if len(e.Expected) > 1 {
		noun = "events"
	}
	return fmt.Sprintf("expected %s %q but got %q", noun, strings.Join(e.Expected, ", "), e.Got)
}

// ExpectEvent returns an *UnexpectedEventError unless e has one of the given types.
func ExpectEvent(e Typed, types ...string) error {
	if IsEvent(e, types...) {
		return nil
	}
	return &UnexpectedEventError{Expected: slices.Clone(types), Got: e.EventType()}
}

// eventTypeOf labels an arbitrary event value for logs and metrics.
func eventTypeOf(v any) string {
	switch e := v.(type) {
	case Typed:
		return e.EventType()
	case string:
		return e
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", v)
	}
}
