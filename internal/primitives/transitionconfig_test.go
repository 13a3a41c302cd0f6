package primitives

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTransitionConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		tc          TransitionConfig
		wantErr     bool
		errContains string
	}{
		{
			name: "valid",
			tc:   TransitionConfig{Target: "next"},
		},
		{
			name: "actions only",
			tc:   TransitionConfig{Actions: []string{"increment"}},
		},
		{
			name:        "nothing to do",
			tc:          TransitionConfig{Guard: "ready"},
			wantErr:     true,
			errContains: "target or actions",
		},
		{
			name:        "invalid character",
			tc:          TransitionConfig{Target: "parent.child"},
			wantErr:     true,
			errContains: "invalid character '.'",
		},
		{
			name:        "empty action",
			tc:          TransitionConfig{Target: "next", Actions: []string{"a", ""}},
			wantErr:     true,
			errContains: "empty action name at index 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err, tt.errContains)
			}
		})
	}
}

func TestTransitionListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want TransitionList
	}{
		{
			name: "target shorthand",
			doc:  "two",
			want: TransitionList{{Target: "two"}},
		},
		{
			name: "mapping",
			doc:  "{target: two, guard: ok, actions: [a, b]}",
			want: TransitionList{{Target: "two", Guard: "ok", Actions: []string{"a", "b"}}},
		},
		{
			name: "list of both",
			doc:  "[one, {actions: [retry]}]",
			want: TransitionList{{Target: "one"}, {Actions: []string{"retry"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TransitionList
			if err := yaml.Unmarshal([]byte(tt.doc), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transitions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Target != tt.want[i].Target || got[i].Guard != tt.want[i].Guard ||
					strings.Join(got[i].Actions, ",") != strings.Join(tt.want[i].Actions, ",") {
					t.Errorf("transition %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTransitionListUnmarshalErrors(t *testing.T) {
	for _, doc := range []string{"{target: two, priority: 1}", "42", "[[two]]"} {
		var got TransitionList
		if err := yaml.Unmarshal([]byte(doc), &got); err == nil {
			t.Errorf("%q: expected error, got %+v", doc, got)
		}
	}
}
