// Package production provides tooling around running machines: Graphviz and
// JSON export of machine descriptions, state snapshots and a channel
// publisher for state streams.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comalice/reducerx"
)

// ExportDOT generates Graphviz DOT source for a machine description. The
// current state, if any, is highlighted. Internal and wildcard transitions
// are drawn as self-loops; machine-level transitions are drawn from every
// state.
func ExportDOT(d reducerx.Description, current string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `digraph %q {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
  "__start" [shape=point];
  "__start" -> %q;
`, d.ID, d.Initial)

	for _, s := range d.States {
		style := ""
		if s.Name == current {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", s.Name, s.Name, style)
	}
	for _, s := range d.States {
		for _, t := range s.Transitions {
			writeEdge(&buf, s.Name, t, "")
		}
	}
	for _, t := range d.Global {
		for _, s := range d.States {
			writeEdge(&buf, s.Name, t, " style=dashed")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeEdge(buf *bytes.Buffer, from string, t reducerx.TransitionDescription, style string) {
	to := t.Target
	if to == "" {
		to = from
	}
	fmt.Fprintf(buf, "  %q -> %q [label=%q%s];\n", from, to, edgeLabel(t), style)
}

func edgeLabel(t reducerx.TransitionDescription) string {
	var b strings.Builder
	b.WriteString(t.Event)
	if t.Guarded {
		b.WriteString(" [guard]")
	}
	if t.Actions > 0 {
		fmt.Fprintf(&b, " / %d", t.Actions)
	}
	return b.String()
}

// ExportJSON serializes a machine description to indented JSON.
func ExportJSON(d reducerx.Description) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
