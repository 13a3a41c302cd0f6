package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/comalice/reducerx"
)

func toggle(t *testing.T) *reducerx.Machine[struct{}] {
	t.Helper()
	m, err := reducerx.NewMachineBuilder[struct{}]("toggle", "s1").
		State("s1").
		On("e1", "s2", func(struct{}, reducerx.Event) bool { return true }).
		State("s2").
		On("e2", "s1", nil).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestExportDOTSimple(t *testing.T) {
	dot := ExportDOT(toggle(t).Describe(), "s2")

	for _, want := range []string{
		`digraph "toggle" {`,
		`"__start" -> "s1";`,
		`"s1" [label="s1"];`,
		`"s2" [label="s2" style="rounded,filled" fillcolor=lightgreen];`,
		`"s1" -> "s2" [label="e1 [guard]"];`,
		`"s2" -> "s1" [label="e2"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %s in:\n%s", want, dot)
		}
	}
}

func TestExportDOTLiftedReducer(t *testing.T) {
	m := reducerx.MachineFromReducer(func(n int, _ reducerx.Event) int { return n + 1 }, 0)
	dot := ExportDOT(m.Describe(), reducerx.LiftedState)

	want := `"reducing" -> "reducing" [label="* / 1" style=dashed];`
	if !strings.Contains(dot, want) {
		t.Errorf("missing wildcard self-loop in:\n%s", dot)
	}
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(toggle(t).Describe())
	if err != nil {
		t.Fatal(err)
	}
	var got reducerx.Description
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "toggle" || len(got.States) != 2 || !got.States[0].Transitions[0].Guarded {
		t.Errorf("unexpected description: %+v", got)
	}
}
