package reducerx

import (
	"errors"
	"fmt"
	"slices"
)

// MachineBuilder provides a fluent API for constructing machines.
type MachineBuilder[C any] struct {
	id      string
	initial string
	context C
	order   []string
	states  map[string]*stateNode[C]
	global  transitionTable[C]
	errs    []error
}

// StateBuilder provides fluent methods for configuring one state.
type StateBuilder[C any] struct {
	b     *MachineBuilder[C]
	state *stateNode[C]
}

// NewMachineBuilder creates a builder for a machine starting in initial.
func NewMachineBuilder[C any](id, initial string) *MachineBuilder[C] {
	return &MachineBuilder[C]{
		id:      id,
		initial: initial,
		states:  make(map[string]*stateNode[C]),
	}
}

// WithContext sets the initial context.
func (b *MachineBuilder[C]) WithContext(ctx C) *MachineBuilder[C] {
	b.context = ctx
	return b
}

// State declares a state, or returns the existing one with that name.
func (b *MachineBuilder[C]) State(name string) *StateBuilder[C] {
	if name == "" {
		b.errs = append(b.errs, errors.New("empty state name"))
	}
	s, ok := b.states[name]
	if !ok {
		s = &stateNode[C]{name: name}
		b.states[name] = s
		b.order = append(b.order, name)
	}
	return &StateBuilder[C]{b: b, state: s}
}

// On adds a machine-level transition, consulted when the current state has
// no enabled transition for the event.
func (b *MachineBuilder[C]) On(event, target string, guard Guard[C], actions ...Assign[C]) *MachineBuilder[C] {
	if b.checkEvent(event) {
		b.global.add(event, Transition[C]{Target: target, Guard: guard, Actions: actions})
	}
	return b
}

// OnAny adds a machine-level wildcard transition matching every event.
func (b *MachineBuilder[C]) OnAny(target string, guard Guard[C], actions ...Assign[C]) *MachineBuilder[C] {
	b.global.any = append(b.global.any, Transition[C]{Target: target, Guard: guard, Actions: actions})
	return b
}

// Build validates the configuration and constructs the Machine.
func (b *MachineBuilder[C]) Build() (*Machine[C], error) {
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidMachine, b.id, err)
	}
	m := &Machine[C]{
		id:      b.id,
		initial: b.initial,
		context: b.context,
		order:   slices.Clone(b.order),
		states:  make(map[string]*stateNode[C], len(b.states)),
		global:  b.global.clone(),
	}
	for name, s := range b.states {
		m.states[name] = &stateNode[C]{name: name, transitions: s.transitions.clone()}
	}
	return m, nil
}

// MustBuild is Build for statically known machines; it panics on error.
func (b *MachineBuilder[C]) MustBuild() *Machine[C] {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

func (b *MachineBuilder[C]) checkEvent(event string) bool {
	switch event {
	case "":
		b.errs = append(b.errs, errors.New("empty event name"))
		return false
	case WildcardEvent:
		b.errs = append(b.errs, errors.New(`event "*" is reserved, use OnAny`))
		return false
	}
	return true
}

// validate checks that all referenced states exist.
func (b *MachineBuilder[C]) validate() error {
	if len(b.errs) > 0 {
		return errors.Join(b.errs...)
	}
	if len(b.order) == 0 {
		return errors.New("no states provided")
	}
	if _, ok := b.states[b.initial]; !ok {
		return fmt.Errorf("initial state %q not declared", b.initial)
	}
	check := func(where string, t *transitionTable[C]) error {
		for event, list := range t.on {
			for _, tr := range list {
				if err := b.checkTarget(where, event, tr.Target); err != nil {
					return err
				}
			}
		}
		for _, tr := range t.any {
			if err := b.checkTarget(where, WildcardEvent, tr.Target); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check("machine", &b.global); err != nil {
		return err
	}
	for _, name := range b.order {
		if err := check("state "+name, &b.states[name].transitions); err != nil {
			return err
		}
	}
	return nil
}

func (b *MachineBuilder[C]) checkTarget(where, event, target string) error {
	if target == "" {
		return nil
	}
	if _, ok := b.states[target]; !ok {
		return fmt.Errorf("%s has transition on %q to unknown state %q", where, event, target)
	}
	return nil
}

func (t transitionTable[C]) clone() transitionTable[C] {
	out := transitionTable[C]{any: slices.Clone(t.any)}
	if t.on != nil {
		out.on = make(map[string][]Transition[C], len(t.on))
		for event, list := range t.on {
			out.on[event] = slices.Clone(list)
		}
	}
	return out
}

// StateBuilder fluent methods

// State continues the chain with another state.
func (sb *StateBuilder[C]) State(name string) *StateBuilder[C] {
	return sb.b.State(name)
}

// On adds a transition to target when event occurs and guard (may be nil) passes.
func (sb *StateBuilder[C]) On(event, target string, guard Guard[C], actions ...Assign[C]) *StateBuilder[C] {
	if sb.b.checkEvent(event) {
		sb.state.transitions.add(event, Transition[C]{Target: target, Guard: guard, Actions: actions})
	}
	return sb
}

// OnInternal adds a transition that runs actions without leaving the state.
func (sb *StateBuilder[C]) OnInternal(event string, guard Guard[C], actions ...Assign[C]) *StateBuilder[C] {
	return sb.On(event, "", guard, actions...)
}

// OnAny adds a wildcard transition matching every event in this state.
func (sb *StateBuilder[C]) OnAny(target string, guard Guard[C], actions ...Assign[C]) *StateBuilder[C] {
	sb.state.transitions.any = append(sb.state.transitions.any, Transition[C]{Target: target, Guard: guard, Actions: actions})
	return sb
}

// Build finishes the chain.
func (sb *StateBuilder[C]) Build() (*Machine[C], error) {
	return sb.b.Build()
}

// MustBuild finishes the chain, panicking on error.
func (sb *StateBuilder[C]) MustBuild() *Machine[C] {
	return sb.b.MustBuild()
}
