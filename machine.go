package reducerx

import (
	"maps"
	"slices"
)

// WildcardEvent names wildcard transitions in descriptions. It is not a valid
// event name for MachineBuilder.On.
const WildcardEvent = "*"

// Guard enables a transition for the given context and event.
type Guard[C any] func(ctx C, event Event) bool

// Assign computes a new context. It must not mutate ctx in place, since
// Transition is also used for speculative evaluation.
type Assign[C any] func(ctx C, event Event) C

type Transition[C any] struct {
	Target  string   // "" --> internal transition
	Guard   Guard[C] // nil --> always enabled
	Actions []Assign[C]
}

// transitionTable holds named entries plus an explicit wildcard entry that
// matches every event and is consulted after the named ones.
type transitionTable[C any] struct {
	on  map[string][]Transition[C]
	any []Transition[C]
}

func (t *transitionTable[C]) add(event string, tr Transition[C]) {
	if t.on == nil {
		t.on = make(map[string][]Transition[C])
	}
	t.on[event] = append(t.on[event], tr)
}

// pick returns the first enabled transition, named entries first (document order).
func (t *transitionTable[C]) pick(ctx C, event Event) *Transition[C] {
	for _, list := range [][]Transition[C]{t.on[event.Type], t.any} {
		for i := range list {
			tr := &list[i]
			if tr.Guard == nil || tr.Guard(ctx, event) {
				return tr
			}
		}
	}
	return nil
}

type stateNode[C any] struct {
	name        string
	transitions transitionTable[C]
}

// Machine is an immutable, declarative transition description. Transition
// is pure, so a Machine can be shared by any number of services and probes.
type Machine[C any] struct {
	id      string
	initial string
	context C
	order   []string
	states  map[string]*stateNode[C]
	global  transitionTable[C]
}

// MachineState is one (possibly hypothetical) configuration of a machine.
type MachineState[C any] struct {
	Value   string `json:"value" yaml:"value"`
	Context C      `json:"context" yaml:"context"`
	Event   Event  `json:"event" yaml:"event"`
	Changed bool   `json:"changed" yaml:"changed"`

	machine *Machine[C]
}

func (m *Machine[C]) ID() string { return m.id }

// States returns the state names in declaration order.
func (m *Machine[C]) States() []string { return slices.Clone(m.order) }

// InitialState returns the state a new service starts in.
func (m *Machine[C]) InitialState() MachineState[C] {
	return MachineState[C]{
		Value:   m.initial,
		Context: m.context,
		machine: m,
	}
}

// Transition computes the state that event would lead to from state without
// touching the machine or any service. If no transition is enabled the input
// state is returned with Changed false.
func (m *Machine[C]) Transition(state MachineState[C], event Event) MachineState[C] {
	next := state
	next.Event = event
	next.Changed = false
	next.machine = m

	t := m.pickTransition(state, event)
	if t == nil {
		return next
	}

	ctx := state.Context
	for _, action := range t.Actions {
		ctx = action(ctx, event)
	}
	next.Context = ctx
	if t.Target != "" {
		next.Value = t.Target
	}
	next.Changed = next.Value != state.Value || len(t.Actions) > 0
	return next
}

func (m *Machine[C]) pickTransition(state MachineState[C], event Event) *Transition[C] {
	node, ok := m.states[state.Value]
	if !ok {
		return nil
	}
	if t := node.transitions.pick(state.Context, event); t != nil {
		return t
	}
	return m.global.pick(state.Context, event)
}

// Machine returns the machine that produced s, or nil for a zero value.
func (s MachineState[C]) Machine() *Machine[C] { return s.machine }

// Matches reports whether the machine is in the named state.
func (s MachineState[C]) Matches(value string) bool { return s.Value == value }

// Can reports whether event would change s.
func (s MachineState[C]) Can(event Event) bool {
	if s.machine == nil {
		return false
	}
	return s.machine.Transition(s, event).Changed
}

// Description is a static view of a machine for tooling.
type Description struct {
	ID      string                  `json:"id"`
	Initial string                  `json:"initial"`
	States  []StateDescription      `json:"states"`
	Global  []TransitionDescription `json:"global,omitempty"`
}

type StateDescription struct {
	Name        string                  `json:"name"`
	Transitions []TransitionDescription `json:"transitions,omitempty"`
}

type TransitionDescription struct {
	Event   string `json:"event"`
	Target  string `json:"target,omitempty"`
	Guarded bool   `json:"guarded,omitempty"`
	Actions int    `json:"actions,omitempty"`
}

// Describe returns the machine's states in declaration order with their
// transitions sorted by event; wildcard entries come last as WildcardEvent.
func (m *Machine[C]) Describe() Description {
	d := Description{
		ID:      m.id,
		Initial: m.initial,
		Global:  m.global.describe(),
	}
	for _, name := range m.order {
		d.States = append(d.States, StateDescription{
			Name:        name,
			Transitions: m.states[name].transitions.describe(),
		})
	}
	return d
}

func (t *transitionTable[C]) describe() []TransitionDescription {
	var out []TransitionDescription
	add := func(event string, list []Transition[C]) {
		for _, tr := range list {
			out = append(out, TransitionDescription{
				Event:   event,
				Target:  tr.Target,
				Guarded: tr.Guard != nil,
				Actions: len(tr.Actions),
			})
		}
	}
	for _, event := range slices.Sorted(maps.Keys(t.on)) {
		add(event, t.on[event])
	}
	add(WildcardEvent, t.any)
	return out
}
