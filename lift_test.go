package reducerx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/comalice/reducerx"
)

func TestMachineFromReducerCounter(t *testing.T) {
	counter := Unary[int, Event](func(c int) int { return c + 1 })
	machine := MachineFromReducer(counter, 0)
	require.Equal(t, Boxed[int]{Value: 0}, machine.InitialState().Context.Normalized())

	svc := Interpret(machine)
	require.Equal(t, Boxed[int]{Value: 0}, svc.State().Context.Normalized())
	require.NoError(t, svc.Start())

	require.Equal(t, Boxed[int]{Value: 0}, svc.State().Context.Normalized())
	svc.Send(NewEvent("blah", nil))
	require.Equal(t, Boxed[int]{Value: 1}, svc.State().Context.Normalized())
}

func TestMachineFromReducerCalc(t *testing.T) {
	machine := MachineFromReducer(calc, 0)
	require.Equal(t, Boxed[int]{Value: 0}, machine.InitialState().Context.Normalized())

	svc := Interpret(machine)
	require.NoError(t, svc.Start())

	svc.Send(NewEvent("ADD", 3))
	require.Equal(t, Boxed[int]{Value: 3}, svc.State().Context.Normalized())
	svc.Send(NewEvent("SUBTRACT", 2))
	require.Equal(t, Boxed[int]{Value: 1}, svc.State().Context.Normalized())
}

func TestMachineFromReducerObject(t *testing.T) {
	machine := MachineFromReducer(auth, authState{Status: "pending"})
	require.Equal(t, authState{Status: "pending"}, machine.InitialState().Context.Normalized())

	svc := Interpret(machine)
	require.NoError(t, svc.Start())

	svc.Send(NewEvent("LOGIN", user{Username: "John"}))
	require.Equal(t, authState{Status: "loggedIn", User: &user{Username: "John"}}, svc.State().Context.Normalized())
	svc.Send(NewEvent("LOGOUT", nil))
	require.Equal(t, authState{Status: "loggedOut", User: nil}, svc.State().Context.Normalized())
}

func TestMachineFromReducerMatchesActor(t *testing.T) {
	events := []Event{
		NewEvent("ADD", 4),
		NewEvent("UNKNOWN", "ignored"),
		NewEvent("SUBTRACT", 9),
		NewEvent("ADD", 2),
	}
	actor := NewActor(calc, 1)
	svc := Interpret(MachineFromReducer(calc, 1))
	require.NoError(t, svc.Start())

	for _, e := range events {
		actor.Send(e)
		svc.Send(e)
		require.Equal(t, actor.State(), svc.State().Context.Value())
	}
	require.Equal(t, Fold(calc, 1, events...), svc.State().Context.Value())
}

func TestMachineFromReducerHandlesEveryEvent(t *testing.T) {
	machine := MachineFromReducer(calc, 0)
	initial := machine.InitialState()

	for _, e := range []Event{NewEvent("ADD", 1), NewEvent("ANYTHING", nil), {}} {
		next := machine.Transition(initial, e)
		require.True(t, next.Changed, "event %q", e.Type)
		require.Equal(t, LiftedState, next.Value)
	}
	// Transition is pure.
	require.Equal(t, 0, machine.InitialState().Context.Value())
	require.Equal(t, 0, initial.Context.Value())
}

func TestMachineFromReducerDescription(t *testing.T) {
	d := MachineFromReducer(calc, 0).Describe()

	require.Equal(t, LiftedMachineID, d.ID)
	require.Equal(t, LiftedState, d.Initial)
	require.Equal(t, []StateDescription{{Name: LiftedState}}, d.States)
	require.Equal(t, []TransitionDescription{{Event: WildcardEvent, Actions: 1}}, d.Global)
}
