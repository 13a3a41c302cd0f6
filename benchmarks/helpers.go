// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/reducerx"
	"github.com/comalice/reducerx/definition"
	"github.com/comalice/reducerx/internal/primitives"
)

// GenRingConfig creates a machine with n states cycling via "tick" events.
func GenRingConfig(n int) *primitives.MachineConfig {
	if n < 1 {
		n = 1
	}
	config := &primitives.MachineConfig{
		ID:      fmt.Sprintf("ring_%d", n),
		Initial: "s0",
		Context: map[string]any{"ticks": 0},
	}
	for i := 0; i < n; i++ {
		target := fmt.Sprintf("s%d", (i+1)%n)
		config.States.Set(fmt.Sprintf("s%d", i), &primitives.StateConfig{
			On: map[string]primitives.TransitionList{"tick": {{Target: target, Actions: []string{"count"}}}},
		})
	}
	return config
}

// GenRingYAML renders GenRingConfig(n) as a YAML document.
func GenRingYAML(n int) []byte {
	data, err := yaml.Marshal(GenRingConfig(n))
	if err != nil {
		panic(err)
	}
	return data
}

// RingImplementations binds the actions used by ring machines.
func RingImplementations() definition.Implementations {
	return definition.Implementations{
		Actions: map[string]reducerx.Assign[definition.Context]{
			"count": definition.AssignKey("ticks", func(ctx definition.Context, _ reducerx.Event) any {
				return ctx["ticks"].(int) + 1
			}),
		},
	}
}

// GenRingMachine loads a ring of n states through the YAML definition path.
func GenRingMachine(n int) *reducerx.Machine[definition.Context] {
	m, err := definition.Load(GenRingYAML(n), RingImplementations())
	if err != nil {
		panic(err)
	}
	return m
}

// GenWideMachine creates one main state with n guarded "tick" candidates of
// which only the last is enabled.
func GenWideMachine(n int) *reducerx.Machine[struct{}] {
	if n < 1 {
		n = 1
	}
	b := reducerx.NewMachineBuilder[struct{}](fmt.Sprintf("wide_%d", n), "main")
	main := b.State("main")
	for i := 0; i < n; i++ {
		enabled := i == n-1
		main.On("tick", "target", func(struct{}, reducerx.Event) bool { return enabled })
	}
	b.State("target").On("tick", "main", nil)
	return b.MustBuild()
}
