package production

import (
	"bytes"
	"strings"
	"testing"

	"github.com/comalice/reducerx"
)

func TestWriteSnapshotLifted(t *testing.T) {
	m := reducerx.MachineFromReducer(func(n int, e reducerx.Event) int { return n + e.Payload.(int) }, 1)
	st := m.Transition(m.InitialState(), reducerx.NewEvent("ADD", 2))
	s := SnapshotOf(st)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, s, FormatYAML); err != nil {
		t.Fatal(err)
	}
	want := `machine: reducer
value: reducing
context:
  value: 3
event:
  type: ADD
  payload: 2
changed: true
`
	if buf.String() != want {
		t.Errorf("yaml:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := WriteSnapshot(&buf, s, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"context": {`) || !strings.Contains(buf.String(), `"value": 3`) {
		t.Errorf("json:\n%s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
	if err := WriteSnapshot(&bytes.Buffer{}, Snapshot{}, Format("xml")); err == nil {
		t.Error("expected error writing xml")
	}
}
