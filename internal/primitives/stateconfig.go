package primitives

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StateConfig describes one state.
type StateConfig struct {
	On map[string]TransitionList `json:"on,omitempty" yaml:"on,omitempty"`
}

// UnmarshalYAML decodes a state strictly. An empty value is a state without
// transitions.
func (s *StateConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: state must be a mapping", node.Line)
	}
	if err := checkKeys(node, "on"); err != nil {
		return err
	}
	type plain StateConfig
	return node.Decode((*plain)(s))
}

// Validate checks every event name and transition of the state.
func (s *StateConfig) Validate() error {
	if s == nil {
		return nil
	}
	return validateOn(s.On)
}

func validateOn(on map[string]TransitionList) error {
	for event, list := range on {
		if strings.TrimSpace(event) == "" {
			return fmt.Errorf("empty event name in on map")
		}
		if len(list) == 0 {
			return fmt.Errorf("event %q has no transitions", event)
		}
		for i := range list {
			if err := list[i].Validate(); err != nil {
				return fmt.Errorf("event %q, transition %d: %w", event, i, err)
			}
		}
	}
	return nil
}

// StateMap holds states in document order.
type StateMap struct {
	names  []string
	states map[string]*StateConfig
}

// NewStateMap builds a StateMap from name/state pairs.
func NewStateMap(pairs ...any) StateMap {
	var m StateMap
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(*StateConfig))
	}
	return m
}

// Set adds or replaces a state, keeping the original position on replace.
func (m *StateMap) Set(name string, s *StateConfig) {
	if m.states == nil {
		m.states = make(map[string]*StateConfig)
	}
	if _, ok := m.states[name]; !ok {
		m.names = append(m.names, name)
	}
	m.states[name] = s
}

// Get returns the named state.
func (m StateMap) Get(name string) (*StateConfig, bool) {
	s, ok := m.states[name]
	return s, ok
}

// Names returns state names in document order.
func (m StateMap) Names() []string { return m.names }

// Len returns the number of states.
func (m StateMap) Len() int { return len(m.names) }

// UnmarshalYAML decodes the mapping and records key order.
func (m *StateMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: states must be a mapping", node.Line)
	}
	*m = StateMap{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if _, dup := m.states[key.Value]; dup {
			return fmt.Errorf("line %d: duplicate state %q", key.Line, key.Value)
		}
		s := &StateConfig{}
		if err := value.Decode(s); err != nil {
			return fmt.Errorf("state %q: %w", key.Value, err)
		}
		m.Set(key.Value, s)
	}
	return nil
}

// MarshalYAML emits the states in document order.
func (m StateMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range m.names {
		var value yaml.Node
		if err := value.Encode(m.states[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &value)
	}
	return node, nil
}
