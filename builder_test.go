package reducerx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/reducerx"
)

func TestBuilderTrafficLight(t *testing.T) {
	b := NewMachineBuilder[struct{}]("traffic", "green")

	b.State("green").On("timer", "yellow", nil)
	b.State("yellow").On("timer", "red", nil)
	b.State("red").On("timer", "green", nil)

	machine, err := b.Build()
	require.NoError(t, err)

	svc := Interpret(machine)
	require.NoError(t, svc.Start())
	defer svc.Stop()

	require.True(t, svc.State().Matches("green"))
	for _, want := range []string{"yellow", "red", "green", "yellow"} {
		svc.Send(NewEvent("timer", nil))
		assert.Equal(t, want, svc.State().Value)
	}
}

func TestBuilderStateIsReused(t *testing.T) {
	b := NewMachineBuilder[struct{}]("reuse", "a")
	b.State("a").On("X", "b", nil)
	b.State("b")
	b.State("a").On("Y", "b", nil)

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.States())
	assert.Len(t, m.Describe().States[0].Transitions, 2)
}

func TestBuilderContext(t *testing.T) {
	type ctx struct{ Count int }
	inc := func(c ctx, _ Event) ctx { return ctx{Count: c.Count + 1} }

	m, err := NewMachineBuilder[ctx]("count", "idle").
		WithContext(ctx{Count: 41}).
		State("idle").
		OnInternal("INC", nil, inc).
		Build()
	require.NoError(t, err)

	next := m.Transition(m.InitialState(), NewEvent("INC", nil))
	assert.Equal(t, 42, next.Context.Count)
	assert.Equal(t, 41, m.InitialState().Context.Count)
}

func TestBuilderIsolatedFromLaterChanges(t *testing.T) {
	b := NewMachineBuilder[struct{}]("iso", "a")
	b.State("a").On("GO", "b", nil)
	b.State("b")

	m, err := b.Build()
	require.NoError(t, err)

	b.State("a").On("OTHER", "b", nil)
	assert.False(t, m.InitialState().Can(NewEvent("OTHER", nil)))
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Machine[struct{}], error)
		msg   string
	}{
		{
			name: "no states",
			build: func() (*Machine[struct{}], error) {
				return NewMachineBuilder[struct{}]("empty", "a").Build()
			},
			msg: "no states provided",
		},
		{
			name: "missing initial",
			build: func() (*Machine[struct{}], error) {
				return NewMachineBuilder[struct{}]("m", "nope").State("a").Build()
			},
			msg: `initial state "nope" not declared`,
		},
		{
			name: "unknown target",
			build: func() (*Machine[struct{}], error) {
				return NewMachineBuilder[struct{}]("m", "a").State("a").On("GO", "b", nil).Build()
			},
			msg: `state a has transition on "GO" to unknown state "b"`,
		},
		{
			name: "unknown wildcard target",
			build: func() (*Machine[struct{}], error) {
				return NewMachineBuilder[struct{}]("m", "a").OnAny("b", nil).State("a").Build()
			},
			msg: `machine has transition on "*" to unknown state "b"`,
		},
		{
			name: "reserved event",
			build: func() (*Machine[struct{}], error) {
				return NewMachineBuilder[struct{}]("m", "a").State("a").On(WildcardEvent, "a", nil).Build()
			},
			msg: `event "*" is reserved, use OnAny`,
		},
		{
			name: "empty event",
			build: func() (*Machine[struct{}], error) {
				return NewMachineBuilder[struct{}]("m", "a").State("a").On("", "a", nil).Build()
			},
			msg: "empty event name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build()
			require.Nil(t, m)
			require.ErrorIs(t, err, ErrInvalidMachine)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestBuilderMustBuildPanics(t *testing.T) {
	require.Panics(t, func() {
		NewMachineBuilder[struct{}]("m", "a").MustBuild()
	})
}

func TestStateBuilderMustBuild(t *testing.T) {
	m := NewMachineBuilder[struct{}]("m", "a").
		State("a").On("GO", "b", nil).
		State("b").
		MustBuild()
	require.Equal(t, "b", m.Transition(m.InitialState(), NewEvent("GO", nil)).Value)

	require.Panics(t, func() {
		NewMachineBuilder[struct{}]("m", "a").State("a").On("GO", "missing", nil).MustBuild()
	})
}
