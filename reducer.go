package reducerx

// Reducer computes the next state from the current state and an event.
// Reducers must be pure and total over the events they may receive; this
// package never reports an unhandled event.
type Reducer[S, E any] func(state S, event E) S

// UnaryReducer ignores events.
type UnaryReducer[S any] func(state S) S

// Unary adapts a UnaryReducer to any event type.
func Unary[S, E any](r UnaryReducer[S]) Reducer[S, E] {
	return func(state S, _ E) S {
		return r(state)
	}
}

// Fold applies r to initial and each event in order, without an actor.
func Fold[S, E any](r Reducer[S, E], initial S, events ...E) S {
	state := initial
	for _, e := range events {
		state = r(state, e)
	}
	return state
}
