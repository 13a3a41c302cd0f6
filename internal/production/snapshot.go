package production

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/reducerx"
)

// Snapshot is a serializable view of one machine state.
type Snapshot struct {
	Machine string         `json:"machine" yaml:"machine"`
	Value   string         `json:"value" yaml:"value"`
	Context any            `json:"context" yaml:"context"`
	Event   reducerx.Event `json:"event" yaml:"event"`
	Changed bool           `json:"changed" yaml:"changed"`
}

// SnapshotOf captures st. Lifted contexts serialize in their normalized form.
func SnapshotOf[C any](st reducerx.MachineState[C]) Snapshot {
	s := Snapshot{Value: st.Value, Context: st.Context, Event: st.Event, Changed: st.Changed}
	if m := st.Machine(); m != nil {
		s.Machine = m.ID()
	}
	return s
}

// Format selects a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown snapshot format %q", s)
	}
}

// WriteSnapshot encodes s to w.
func WriteSnapshot(w io.Writer, s Snapshot, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown snapshot format %q", f)
	}
}
