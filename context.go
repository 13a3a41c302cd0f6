package reducerx

import (
	"encoding/json"
	"reflect"
)

// Shape records how a reducer state is stored as machine context.
type Shape uint8

const (
	// ShapeScalar states are boxed under a single "value" field.
	ShapeScalar Shape = iota
	// ShapeRecord states are the machine context themselves.
	ShapeRecord
)

func (s Shape) String() string {
	switch s {
	case ShapeRecord:
		return "record"
	case ShapeScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ShapeOf classifies v. Non-nil structs, maps and pointers to structs are
// records; everything else, including nil pointers, nil maps and slices, is
// a scalar. Slices and arrays are boxed under "value" rather than used as the
// context directly, since they have no keys to merge into.
func ShapeOf(v any) Shape {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		return ShapeRecord
	case reflect.Map:
		if rv.IsNil() {
			return ShapeScalar
		}
		return ShapeRecord
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return ShapeScalar
		}
		return ShapeRecord
	default:
		return ShapeScalar
	}
}

// Boxed is the normalized form of a scalar state.
type Boxed[S any] struct {
	Value S `json:"value" yaml:"value"`
}

// Context is the machine context of a lifted reducer. Its shape is fixed
// when the machine is built and carried through every transition.
type Context[S any] struct {
	shape Shape
	value S
}

func newContext[S any](v S) Context[S] {
	return Context[S]{shape: ShapeOf(v), value: v}
}

// Shape returns the shape chosen at construction.
func (c Context[S]) Shape() Shape { return c.shape }

// Value unwraps the reducer state.
func (c Context[S]) Value() S { return c.value }

// Normalized returns the state itself for records and Boxed{Value} for scalars.
func (c Context[S]) Normalized() any {
	if c.shape == ShapeRecord {
		return c.value
	}
	return Boxed[S]{Value: c.value}
}

// with rewraps a new reducer state keeping the original shape.
func (c Context[S]) with(v S) Context[S] {
	return Context[S]{shape: c.shape, value: v}
}

func (c Context[S]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Normalized())
}

func (c Context[S]) MarshalYAML() (any, error) {
	return c.Normalized(), nil
}
