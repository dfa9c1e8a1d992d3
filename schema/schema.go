// Package schema provides composable shape descriptors for untyped JSON values.
//
// A Schema validates a value produced by encoding/json (map[string]any,
// []any, string, bool, json.Number or float64, nil) and converts it into a
// typed Go value. Descriptors compose: objects of fields, unions of variants,
// literal matches, and primitive leaves. No reflection is involved; every
// field is bound explicitly to a setter on the destination type.
//
// Validation never mutates its input.
package schema

// Schema validates raw and converts it into a T.
//
// path is the location of raw within the document being validated and is
// used only for error reporting. Use "" for the document root.
type Schema[T any] interface {
	Validate(raw any, path string) (T, error)
}

// Func adapts a function to the Schema interface.
type Func[T any] func(raw any, path string) (T, error)

// Validate implements Schema.
func (f Func[T]) Validate(raw any, path string) (T, error) { return f(raw, path) }

// Create validates raw against s at the document root.
func Create[T any](raw any, s Schema[T]) (T, error) {
	if s == nil {
		var zero T
		return zero, newError("", RuleInternal, "nil schema")
	}
	return s.Validate(raw, "")
}

// Map converts the output of s with fn once s has accepted the input.
func Map[A, B any](s Schema[A], fn func(A) B) Schema[B] {
	return Func[B](func(raw any, path string) (B, error) {
		a, err := s.Validate(raw, path)
		if err != nil {
			var zero B
			return zero, err
		}
		return fn(a), nil
	})
}

// Any accepts every value unchanged.
func Any() Schema[any] {
	return Func[any](func(raw any, _ string) (any, error) { return raw, nil })
}
