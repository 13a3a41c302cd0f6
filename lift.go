package reducerx

// LiftedState is the single state of a machine built by MachineFromReducer.
const LiftedState = "reducing"

// LiftedMachineID is the id of machines built by MachineFromReducer.
const LiftedMachineID = "reducer"

// MachineFromReducer lifts reducer into a one-state machine whose context is
// the reducer state, boxed under "value" unless initial is a record. A single
// wildcard transition applies the reducer to every event, so running the
// machine is indistinguishable from folding the reducer directly.
func MachineFromReducer[S any](reducer Reducer[S, Event], initial S) *Machine[Context[S]] {
	reduce := func(ctx Context[S], event Event) Context[S] {
		return ctx.with(reducer(ctx.Value(), event))
	}
	return NewMachineBuilder[Context[S]](LiftedMachineID, LiftedState).
		WithContext(newContext(initial)).
		OnAny("", nil, reduce).
		State(LiftedState).
		MustBuild()
}
