package schema

// Union accepts the first variant that validates, trying them in order.
//
// When no variant matches, the returned *Error lists every variant's failure.
func Union[T any](variants ...Schema[T]) Schema[T] {
	return Func[T](func(raw any, path string) (T, error) {
		var zero T
		fails := make([]error, 0, len(variants))
		for _, v := range variants {
			out, err := v.Validate(raw, path)
			if err == nil {
				return out, nil
			}
			fails = append(fails, err)
		}
		return zero, &Error{
			Path:     path,
			RuleID:   RuleUnion,
			Message:  "no union variant matched",
			Variants: fails,
		}
	})
}
