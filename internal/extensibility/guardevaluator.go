package extensibility

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/comalice/reducerx"
)

// EventPrefix marks an expression key that reads the event payload instead of
// the machine context.
const EventPrefix = "event."

// CompileGuard parses a simple expression like "temp > 30", "loggedIn == true"
// or "event.parameter == true" into a guard over a map context.
//
// The grammar is "key op literal" with ops == != > >= < <=. Keys are dotted
// paths into nested maps. Literals are true, false, nil, numbers or strings,
// optionally quoted; everything after the operator is the literal, so
// `status == "logged in"` compares against "logged in". A missing key fails
// the guard, except for "!=".
func CompileGuard(expr string) (reducerx.Guard[map[string]any], error) {
	key, rest := cutSpace(expr)
	op, raw := cutSpace(rest)
	if key == "" || op == "" || raw == "" {
		return nil, fmt.Errorf("guard %q: want \"key op value\"", expr)
	}
	lit := parseLiteral(raw)

	var cmp func(v any) bool
	switch op {
	case "==":
		cmp = func(v any) bool { return equal(v, lit) }
	case "!=":
		cmp = func(v any) bool { return !equal(v, lit) }
	case ">", ">=", "<", "<=":
		want, ok := lit.(float64)
		if !ok {
			return nil, fmt.Errorf("guard %q: %s needs a number", expr, op)
		}
		cmp = func(v any) bool {
			f, ok := toFloat(v)
			if !ok {
				return false
			}
			switch op {
			case ">":
				return f > want
			case ">=":
				return f >= want
			case "<":
				return f < want
			default:
				return f <= want
			}
		}
	default:
		return nil, fmt.Errorf("guard %q: unknown operator %q", expr, op)
	}

	lookup := func(ctx map[string]any, e reducerx.Event) (any, bool) {
		return path(ctx, key)
	}
	if rest, ok := strings.CutPrefix(key, EventPrefix); ok {
		if rest == "" {
			return nil, fmt.Errorf("guard %q: empty event key", expr)
		}
		lookup = func(_ map[string]any, e reducerx.Event) (any, bool) {
			return path(e.Payload, rest)
		}
	}

	return func(ctx map[string]any, e reducerx.Event) bool {
		v, found := lookup(ctx, e)
		if !found {
			return op == "!="
		}
		return cmp(v)
	}, nil
}

// cutSpace splits s around its first run of whitespace.
func cutSpace(s string) (head, tail string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func parseLiteral(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "nil", "null":
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}

func equal(v, lit any) bool {
	switch want := lit.(type) {
	case nil:
		return v == nil
	case float64:
		f, ok := toFloat(v)
		return ok && f == want
	default:
		return v == lit
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// path walks dotted keys through nested map[string]any values.
func path(root any, key string) (any, bool) {
	cur := root
	for _, seg := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}
