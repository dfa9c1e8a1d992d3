package schema

import "sort"

// Field binds one object member to a setter on the destination type T.
type Field[T any] struct {
	name     string
	optional bool
	apply    func(dst *T, raw any, path string) error
}

// Required declares a member that must be present and match s.
func Required[T, V any](name string, s Schema[V], set func(*T, V)) Field[T] {
	return Field[T]{name: name, apply: bind(s, set)}
}

// Optional declares a member that may be absent. A present member must
// still match s (JSON null is only accepted if s accepts it).
func Optional[T, V any](name string, s Schema[V], set func(*T, V)) Field[T] {
	return Field[T]{name: name, optional: true, apply: bind(s, set)}
}

func bind[T, V any](s Schema[V], set func(*T, V)) func(*T, any, string) error {
	return func(dst *T, raw any, path string) error {
		v, err := s.Validate(raw, path)
		if err != nil {
			return err
		}
		if set != nil {
			set(dst, v)
		}
		return nil
	}
}

// Object describes a JSON object with exactly the declared members.
// Unknown members are rejected.
func Object[T any](fields ...Field[T]) Schema[T] {
	return newObject(true, fields)
}

// Type describes a JSON object with at least the declared members.
// Unknown members are ignored.
func Type[T any](fields ...Field[T]) Schema[T] {
	return newObject(false, fields)
}

type objectSchema[T any] struct {
	strict bool
	fields []Field[T]
	known  map[string]struct{}
}

func newObject[T any](strict bool, fields []Field[T]) *objectSchema[T] {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.name] = struct{}{}
	}
	return &objectSchema[T]{strict: strict, fields: fields, known: known}
}

func (s *objectSchema[T]) Validate(raw any, path string) (T, error) {
	var out T
	m, ok := raw.(map[string]any)
	if !ok {
		return out, typeError(path, "object", raw)
	}

	// Declaration order is the evaluation order.
	for _, f := range s.fields {
		v, present := m[f.name]
		if !present {
			if f.optional {
				continue
			}
			return out, newError(join(path, f.name), RuleMissing, "missing required field")
		}
		if err := f.apply(&out, v, join(path, f.name)); err != nil {
			return out, err
		}
	}

	if s.strict {
		var unknown []string
		for k := range m {
			if _, ok := s.known[k]; !ok {
				unknown = append(unknown, k)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return out, newError(join(path, unknown[0]), RuleUnknown, "unknown field")
		}
	}
	return out, nil
}
