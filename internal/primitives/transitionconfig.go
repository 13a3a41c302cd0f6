package primitives

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TransitionConfig is one candidate transition. An empty Target keeps the
// current state and only runs Actions.
type TransitionConfig struct {
	Target  string   `json:"target,omitempty" yaml:"target,omitempty"`
	Guard   string   `json:"guard,omitempty" yaml:"guard,omitempty"`
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Validate checks the target name and action names.
func (t *TransitionConfig) Validate() error {
	if t.Target != "" {
		if err := ValidateName(t.Target); err != nil {
			return fmt.Errorf("invalid target: %w", err)
		}
	}
	for i, a := range t.Actions {
		if a == "" {
			return fmt.Errorf("empty action name at index %d", i)
		}
	}
	if t.Target == "" && len(t.Actions) == 0 {
		return errors.New("transition needs a target or actions")
	}
	return nil
}

// ValidateName checks a state name: non-empty, letters, digits, '_' or '-'.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	for i, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return fmt.Errorf("invalid name %q: invalid character '%c' at index %d", name, r, i)
		}
	}
	return nil
}

// TransitionList is the ordered candidate list for one event.
type TransitionList []TransitionConfig

// UnmarshalYAML accepts a target string, a single transition mapping or a
// sequence of either.
func (l *TransitionList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode, yaml.MappingNode:
		t, err := decodeTransition(node)
		if err != nil {
			return err
		}
		*l = TransitionList{t}
		return nil
	case yaml.SequenceNode:
		out := make(TransitionList, 0, len(node.Content))
		for _, item := range node.Content {
			t, err := decodeTransition(item)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: transition must be a target, a mapping or a list", node.Line)
	}
}

func decodeTransition(node *yaml.Node) (TransitionConfig, error) {
	var t TransitionConfig
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return t, fmt.Errorf("line %d: target must be a string, got %s", node.Line, node.Tag)
		}
		t.Target = node.Value
		return t, nil
	case yaml.MappingNode:
		if err := checkKeys(node, "target", "guard", "actions"); err != nil {
			return t, err
		}
		if err := node.Decode(&t); err != nil {
			return t, err
		}
		return t, nil
	default:
		return t, fmt.Errorf("line %d: transition must be a target or a mapping", node.Line)
	}
}

// checkKeys rejects unknown keys. Node.Decode does not inherit the strict
// mode of the outer decoder, so custom unmarshalers check by hand.
func checkKeys(node *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: field %s not found", key.Line, key.Value)
		}
	}
	return nil
}
