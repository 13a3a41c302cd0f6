package primitives

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// WildcardEvent is the `on` key matching every event.
const WildcardEvent = "*"

// MachineConfig is the top-level machine document.
type MachineConfig struct {
	ID      string                    `json:"id" yaml:"id"`
	Initial string                    `json:"initial" yaml:"initial"`
	Context map[string]any            `json:"context,omitempty" yaml:"context,omitempty"`
	States  StateMap                  `json:"-" yaml:"states"`
	On      map[string]TransitionList `json:"on,omitempty" yaml:"on,omitempty"`
}

// Parse decodes a single YAML document strictly and validates it.
func Parse(data []byte) (*MachineConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m MachineConfig
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode machine: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate validates the entire machine configuration:
// - Non-empty ID and Initial
// - Initial exists in States
// - All states and transitions validate
// - All transition targets exist in States
// - No orphaned states (all reachable from Initial)
func (m *MachineConfig) Validate() error {
	if m.ID == "" {
		return errors.New("machine ID is required")
	}
	if m.Initial == "" {
		return errors.New("initial state ID is required")
	}
	if m.States.Len() == 0 {
		return errors.New("states map is required and cannot be empty")
	}
	if _, ok := m.States.Get(m.Initial); !ok {
		return fmt.Errorf("initial state %q not found in states", m.Initial)
	}

	for _, sid := range m.States.Names() {
		if err := ValidateName(sid); err != nil {
			return fmt.Errorf("state %q validation failed: %w", sid, err)
		}
		state, _ := m.States.Get(sid)
		if err := state.Validate(); err != nil {
			return fmt.Errorf("state %q validation failed: %w", sid, err)
		}
		if state == nil {
			continue
		}
		if err := m.checkTargets(sid, state.On); err != nil {
			return err
		}
	}
	if err := validateOn(m.On); err != nil {
		return fmt.Errorf("machine transitions: %w", err)
	}
	if err := m.checkTargets("", m.On); err != nil {
		return err
	}

	visited := m.reachable()
	for _, sid := range m.States.Names() {
		if !visited[sid] {
			return fmt.Errorf("orphaned state %q (not reachable from initial %q)", sid, m.Initial)
		}
	}
	return nil
}

func (m *MachineConfig) checkTargets(sid string, on map[string]TransitionList) error {
	for event, list := range on {
		for i, t := range list {
			if t.Target == "" {
				continue
			}
			if _, ok := m.States.Get(t.Target); !ok {
				if sid == "" {
					return fmt.Errorf("invalid transition target %q (machine, event %q, transition %d)", t.Target, event, i)
				}
				return fmt.Errorf("invalid transition target %q (state %q, event %q, transition %d)", t.Target, sid, event, i)
			}
		}
	}
	return nil
}

// reachable marks states reachable from Initial. Machine-level transitions
// apply in every state, so their targets are always reachable.
func (m *MachineConfig) reachable() map[string]bool {
	visited := make(map[string]bool)
	queue := []string{m.Initial}
	for _, list := range m.On {
		for _, t := range list {
			if t.Target != "" {
				queue = append(queue, t.Target)
			}
		}
	}
	for len(queue) > 0 {
		sid := queue[0]
		queue = queue[1:]
		if visited[sid] {
			continue
		}
		visited[sid] = true
		state, _ := m.States.Get(sid)
		if state == nil {
			continue
		}
		for _, list := range state.On {
			for _, t := range list {
				if t.Target != "" && !visited[t.Target] {
					queue = append(queue, t.Target)
				}
			}
		}
	}
	return visited
}
