package testutil

import (
	"github.com/comalice/reducerx"
)

// Driver provides a common interface over a reducer actor and the lifted
// machine running in a service. This allows running the same test suite on both.
type Driver[S any] interface {
	Send(event reducerx.Event)
	Current() S
}

// ActorDriver drives a reducer through an Actor.
type ActorDriver[S any] struct {
	Actor *reducerx.Actor[S, reducerx.Event]
}

// NewActorDriver creates an ActorDriver.
func NewActorDriver[S any](r reducerx.Reducer[S, reducerx.Event], initial S) *ActorDriver[S] {
	return &ActorDriver[S]{Actor: reducerx.NewActor(r, initial)}
}

func (d *ActorDriver[S]) Send(event reducerx.Event) { d.Actor.Send(event) }

func (d *ActorDriver[S]) Current() S { return d.Actor.State() }

// MachineDriver drives a reducer through MachineFromReducer and a started Service.
type MachineDriver[S any] struct {
	Service *reducerx.Service[reducerx.Context[S]]
}

// NewMachineDriver lifts r and starts a service for it.
func NewMachineDriver[S any](r reducerx.Reducer[S, reducerx.Event], initial S) (*MachineDriver[S], error) {
	svc := reducerx.Interpret(reducerx.MachineFromReducer(r, initial))
	if err := svc.Start(); err != nil {
		return nil, err
	}
	return &MachineDriver[S]{Service: svc}, nil
}

func (d *MachineDriver[S]) Send(event reducerx.Event) { d.Service.Send(event) }

func (d *MachineDriver[S]) Current() S { return d.Service.State().Context.Value() }
