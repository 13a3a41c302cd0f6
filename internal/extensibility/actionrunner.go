package extensibility

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/comalice/reducerx"
)

// Action is an assignment over a map context.
type Action = reducerx.Assign[map[string]any]

// ActionRegistry resolves action names to implementations.
type ActionRegistry map[string]Action

// Resolve looks up every name. Unregistered names are an error.
func (r ActionRegistry) Resolve(names []string) ([]Action, error) {
	out := make([]Action, 0, len(names))
	for _, name := range names {
		a, ok := r[name]
		if !ok || a == nil {
			return nil, fmt.Errorf("action %q not registered", name)
		}
		out = append(out, a)
	}
	return out, nil
}

// Logged wraps an action with debug logging around execution.
func Logged(log *slog.Logger, name string, inner Action) Action {
	return func(ctx map[string]any, e reducerx.Event) map[string]any {
		start := time.Now()
		next := inner(ctx, e)
		log.Debug("action executed",
			slog.String("action", name),
			slog.String("event", e.Type),
			slog.Duration("took", time.Since(start)))
		return next
	}
}
