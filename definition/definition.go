// Package definition loads machines from YAML documents.
//
// A document names its guards and actions; Implementations binds those names
// to Go functions. Guards that are not registered are compiled as simple
// expressions over the context ("count > 2") or the event payload
// ("event.parameter == true"). Actions must always be registered.
//
//	machine, err := definition.Load(data, definition.Implementations{
//		Actions: map[string]reducerx.Assign[map[string]any]{
//			"increment": definition.AssignKey("count", func(ctx map[string]any, _ reducerx.Event) any {
//				return ctx["count"].(int) + 1
//			}),
//		},
//	})
package definition

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/comalice/reducerx"
	"github.com/comalice/reducerx/internal/extensibility"
	"github.com/comalice/reducerx/internal/primitives"
)

// Context is the context type of loaded machines.
type Context = map[string]any

// Implementations binds the names used in a document.
type Implementations struct {
	Guards  map[string]reducerx.Guard[Context]
	Actions map[string]reducerx.Assign[Context]
	// Logger, when set, logs every action execution at debug level.
	Logger *slog.Logger
}

// Load parses, validates and builds a machine from a YAML document.
func Load(data []byte, impl Implementations) (*reducerx.Machine[Context], error) {
	cfg, err := primitives.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load machine: %w", err)
	}
	return build(cfg, impl)
}

// LoadFile reads path and calls Load.
func LoadFile(path string, impl Implementations) (*reducerx.Machine[Context], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load machine: %w", err)
	}
	return Load(data, impl)
}

// AssignKey returns an action that sets key to fn's result on a copy of the
// context.
func AssignKey(key string, fn func(ctx Context, e reducerx.Event) any) reducerx.Assign[Context] {
	return func(ctx Context, e reducerx.Event) Context {
		next := maps.Clone(ctx)
		if next == nil {
			next = Context{}
		}
		next[key] = fn(ctx, e)
		return next
	}
}

type binder struct {
	impl    Implementations
	actions extensibility.ActionRegistry
}

func build(cfg *primitives.MachineConfig, impl Implementations) (*reducerx.Machine[Context], error) {
	bd := &binder{impl: impl, actions: extensibility.ActionRegistry(impl.Actions)}

	ctx := maps.Clone(cfg.Context)
	if ctx == nil {
		ctx = Context{}
	}
	b := reducerx.NewMachineBuilder[Context](cfg.ID, cfg.Initial).WithContext(ctx)

	err := bd.bind(cfg.On, func(event string, t reducerx.Transition[Context]) {
		if event == primitives.WildcardEvent {
			b.OnAny(t.Target, t.Guard, t.Actions...)
			return
		}
		b.On(event, t.Target, t.Guard, t.Actions...)
	})
	if err != nil {
		return nil, fmt.Errorf("machine %q: %w", cfg.ID, err)
	}

	for _, name := range cfg.States.Names() {
		sb := b.State(name)
		state, _ := cfg.States.Get(name)
		if state == nil {
			continue
		}
		err := bd.bind(state.On, func(event string, t reducerx.Transition[Context]) {
			if event == primitives.WildcardEvent {
				sb.OnAny(t.Target, t.Guard, t.Actions...)
				return
			}
			sb.On(event, t.Target, t.Guard, t.Actions...)
		})
		if err != nil {
			return nil, fmt.Errorf("machine %q, state %q: %w", cfg.ID, name, err)
		}
	}
	return b.Build()
}

// bind resolves every transition of on and hands it to add, in event order.
func (bd *binder) bind(on map[string]primitives.TransitionList, add func(string, reducerx.Transition[Context])) error {
	for _, event := range slices.Sorted(maps.Keys(on)) {
		for i, tc := range on[event] {
			t, err := bd.transition(tc)
			if err != nil {
				return fmt.Errorf("event %q, transition %d: %w", event, i, err)
			}
			add(event, t)
		}
	}
	return nil
}

func (bd *binder) transition(tc primitives.TransitionConfig) (reducerx.Transition[Context], error) {
	t := reducerx.Transition[Context]{Target: tc.Target}
	if tc.Guard != "" {
		g, err := bd.guard(tc.Guard)
		if err != nil {
			return t, err
		}
		t.Guard = g
	}
	actions, err := bd.actions.Resolve(tc.Actions)
	if err != nil {
		return t, err
	}
	if log := bd.impl.Logger; log != nil {
		for i, name := range tc.Actions {
			actions[i] = extensibility.Logged(log, name, actions[i])
		}
	}
	t.Actions = actions
	return t, nil
}

func (bd *binder) guard(name string) (reducerx.Guard[Context], error) {
	if g, ok := bd.impl.Guards[name]; ok && g != nil {
		return g, nil
	}
	g, err := extensibility.CompileGuard(name)
	if err != nil {
		return nil, fmt.Errorf("guard %q is not registered and is not an expression: %w", name, err)
	}
	return g, nil
}
