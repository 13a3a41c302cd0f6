package reducerx

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
)

// MachineBacked is implemented by references that expose the machine behind
// their state stream, such as *Service and *DeferredRef.
type MachineBacked[C any] interface {
	Machine() *Machine[C]
}

// TransitionProbe continuously answers "would sending this event right now
// change the state?" for a machine-backed reference. It only ever calls the
// machine's pure Transition; the reference is never sent anything.
type TransitionProbe[C any] struct {
	log      *slog.Logger
	machine  MachineBacked[C]
	deferred Deferrable
	useCan   bool
	out      *Actor[bool, bool]

	mu       sync.Mutex
	event    Event
	latest   MachineState[C]
	hasState bool
	sub      Subscription
	closed   bool
}

// NewTransitionProbe subscribes to ref and evaluates event, a bare event type
// or an Event, against every state ref emits.
//
// ref must expose a non-nil machine or be Deferrable; anything else is a
// programming error reported as ErrNotStateMachine. While a Deferrable ref is
// deferred, or whenever its machine is momentarily nil, the probe reads false.
func NewTransitionProbe[C any](ref Subscribable[MachineState[C]], event any, opts ...Option) (*TransitionProbe[C], error) {
	ev, err := ToEvent(event)
	if err != nil {
		return nil, fmt.Errorf("transition probe: %w", err)
	}
	mb, _ := ref.(MachineBacked[C])
	df, _ := ref.(Deferrable)
	if df == nil && (mb == nil || mb.Machine() == nil) {
		return nil, fmt.Errorf("%w (got %T)", ErrNotStateMachine, ref)
	}

	o := applyOptions("probe", opts)
	p := &TransitionProbe[C]{
		log:      o.logger,
		machine:  mb,
		deferred: df,
		useCan:   o.useCan,
		event:    ev,
	}
	p.out = NewActor[bool, bool](func(_ bool, v bool) bool { return v }, false,
		append(slices.Clone(opts), WithID(o.id))...)

	sub := ref.Subscribe(p.observe)
	p.mu.Lock()
	p.sub = sub
	p.mu.Unlock()
	return p, nil
}

// Value returns the latest answer.
func (p *TransitionProbe[C]) Value() bool { return p.out.State() }

// Subscribe observes the answer with replay-latest semantics. fn is only
// called again when the answer flips.
func (p *TransitionProbe[C]) Subscribe(fn func(bool)) Subscription {
	return p.out.Subscribe(fn)
}

// Event returns the candidate event.
func (p *TransitionProbe[C]) Event() Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.event
}

// SetEvent replaces the candidate event and re-evaluates against the latest
// state. An event structurally equal to the current one is a no-op.
func (p *TransitionProbe[C]) SetEvent(event any) error {
	ev, err := ToEvent(event)
	if err != nil {
		return fmt.Errorf("transition probe: %w", err)
	}
	p.mu.Lock()
	if reflect.DeepEqual(p.event, ev) {
		p.mu.Unlock()
		return nil
	}
	p.event = ev
	st, ready := p.latest, p.hasState && !p.closed
	p.mu.Unlock()

	if ready {
		p.publish(ev, p.evaluate(st, ev))
	}
	return nil
}

// Close detaches from the reference and releases the probe's observers.
func (p *TransitionProbe[C]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	sub := p.sub
	p.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	p.out.Release()
}

func (p *TransitionProbe[C]) observe(st MachineState[C]) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.latest = st
	p.hasState = true
	ev := p.event
	p.mu.Unlock()

	p.publish(ev, p.evaluate(st, ev))
}

func (p *TransitionProbe[C]) evaluate(st MachineState[C], ev Event) bool {
	if p.deferred != nil && p.deferred.Deferred() {
		return false
	}
	m := st.Machine()
	if p.machine != nil {
		m = p.machine.Machine()
	}
	if m == nil {
		return false
	}
	if p.useCan && st.Machine() != nil {
		return st.Can(ev)
	}
	return m.Transition(st, ev).Changed
}

func (p *TransitionProbe[C]) publish(ev Event, v bool) {
	if p.out.State() == v {
		return
	}
	p.log.Debug("transition availability changed", slog.String("event", ev.Type), slog.Bool("available", v))
	p.out.Send(v)
}
