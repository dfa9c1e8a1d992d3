package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/mr-tron/base58"
)

// DigestSize is the decoded length of a Sui base58 digest.
const DigestSize = 32

// String accepts JSON strings.
func String() Schema[string] {
	return Func[string](func(raw any, path string) (string, error) {
		s, ok := raw.(string)
		if !ok {
			return "", typeError(path, "string", raw)
		}
		return s, nil
	})
}

// Literal accepts exactly the string want.
func Literal(want string) Schema[string] {
	return Func[string](func(raw any, path string) (string, error) {
		s, ok := raw.(string)
		if !ok || s != want {
			return "", newError(path, RuleLiteral, fmt.Sprintf("expected literal %q", want))
		}
		return s, nil
	})
}

// Bool accepts JSON booleans.
func Bool() Schema[bool] {
	return Func[bool](func(raw any, path string) (bool, error) {
		b, ok := raw.(bool)
		if !ok {
			return false, typeError(path, "boolean", raw)
		}
		return b, nil
	})
}

// Integer accepts integral JSON numbers and decimal-string integers (the
// form Sui uses for u64 and larger Move values) that fit in an int64.
func Integer() Schema[int64] {
	return Func[int64](func(raw any, path string) (int64, error) {
		n, ok := asNumber(raw)
		if s, isString := raw.(string); isString {
			n, ok = json.Number(s), true
		}
		if !ok {
			return 0, typeError(path, "number", raw)
		}
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0, newError(path, RuleInteger, fmt.Sprintf("expected an integer, got %s", n))
		}
		return i, nil
	})
}

// Uint8 accepts integral JSON numbers in [0, 255], the encoding of a Move u8.
func Uint8() Schema[uint8] {
	ints := Integer()
	return Func[uint8](func(raw any, path string) (uint8, error) {
		i, err := ints.Validate(raw, path)
		if err != nil {
			return 0, err
		}
		if i < 0 || i > math.MaxUint8 {
			return 0, newError(path, RuleInteger, fmt.Sprintf("%d out of range for u8", i))
		}
		return uint8(i), nil
	})
}

// Digest accepts base58 strings that decode to DigestSize bytes, such as
// transaction and object digests.
func Digest() Schema[string] {
	return Func[string](func(raw any, path string) (string, error) {
		s, ok := raw.(string)
		if !ok {
			return "", typeError(path, "string", raw)
		}
		b, err := base58.Decode(s)
		if err != nil || len(b) != DigestSize {
			return "", newError(path, RuleDigest, fmt.Sprintf("expected a base58 %d-byte digest", DigestSize))
		}
		return s, nil
	})
}

func asNumber(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		return n, true
	case float64:
		return json.Number(strconv.FormatFloat(n, 'f', -1, 64)), true
	case float32:
		return json.Number(strconv.FormatFloat(float64(n), 'f', -1, 32)), true
	case int:
		return json.Number(strconv.Itoa(n)), true
	case int64:
		return json.Number(strconv.FormatInt(n, 10)), true
	case int32:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case uint64:
		return json.Number(strconv.FormatUint(n, 10)), true
	default:
		return "", false
	}
}
