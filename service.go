package reducerx

import (
	"log/slog"
	"slices"
	"sync/atomic"
)

// Status is the lifecycle stage of a Service.
type Status int32

const (
	NotStarted Status = iota
	Running
	Stopped
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Service runs a Machine. It is an Actor whose reducer is the machine's
// Transition, so every Send is synchronous and observers see every state,
// changed or not.
type Service[C any] struct {
	machine *Machine[C]
	actor   *Actor[MachineState[C], Event]
	status  atomic.Int32
	log     *slog.Logger
}

var _ ActorRef[MachineState[int], Event] = (*Service[int])(nil)

// Interpret creates a Service for machine in its initial state. Events are
// ignored until Start.
func Interpret[C any](machine *Machine[C], opts ...Option) *Service[C] {
	o := applyOptions("service", opts)
	s := &Service[C]{machine: machine, log: o.logger}
	s.actor = NewActor[MachineState[C], Event](machine.Transition, machine.InitialState(),
		append(slices.Clone(opts), WithID(o.id))...)
	return s
}

// ID returns the service id.
func (s *Service[C]) ID() string { return s.actor.ID() }

// Machine returns the interpreted machine.
func (s *Service[C]) Machine() *Machine[C] { return s.machine }

// Status returns the lifecycle stage.
func (s *Service[C]) Status() Status { return Status(s.status.Load()) }

// Start begins accepting events. Starting a running service is a no-op;
// a stopped service cannot be restarted.
func (s *Service[C]) Start() error {
	if s.status.CompareAndSwap(int32(NotStarted), int32(Running)) {
		s.log.Debug("service started", slog.String("machine", s.machine.ID()))
		return nil
	}
	if s.Status() == Stopped {
		return ErrServiceStopped
	}
	return nil
}

// Stop stops accepting events and releases all observers. Safe to call
// multiple times.
func (s *Service[C]) Stop() {
	if Status(s.status.Swap(int32(Stopped))) == Stopped {
		return
	}
	s.actor.Release()
	s.log.Debug("service stopped")
}

// Send applies event if the service is running. Events sent before Start or
// after Stop are dropped, never queued.
func (s *Service[C]) Send(event Event) {
	if st := s.Status(); st != Running {
		s.log.Warn("event dropped", slog.String("event", event.Type), slog.String("status", st.String()))
		return
	}
	s.actor.Send(event)
}

// Subscribe observes machine states with replay-latest semantics.
func (s *Service[C]) Subscribe(fn func(MachineState[C])) Subscription {
	return s.actor.Subscribe(fn)
}

// State returns the current machine state.
func (s *Service[C]) State() MachineState[C] { return s.actor.State() }
