package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Stable rule identifiers for validation failures.
//
// Callers should branch on RuleID rather than matching error strings.
const (
	RuleType     = "SCHEMA-TYPE-001"
	RuleMissing  = "SCHEMA-OBJ-001"
	RuleUnknown  = "SCHEMA-OBJ-002"
	RuleLiteral  = "SCHEMA-LIT-001"
	RuleUnion    = "SCHEMA-UNION-001"
	RuleInteger  = "SCHEMA-INT-001"
	RuleDigest   = "SCHEMA-DIGEST-001"
	RuleInternal = "SCHEMA-INTERNAL-001"
)

// Error is a validation failure at a specific location in the input.
//
// Path is a JSON-pointer-like location ("" for the root, "/id/id" for a nested
// member). Message is intended for humans; do not match on it.
type Error struct {
	Path    string
	RuleID  string
	Message string

	// Variants holds the per-variant failures of a union, in declaration order.
	Variants []error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if len(e.Variants) > 0 {
		sb.WriteString(" [")
		for i, v := range e.Variants {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(v.Error())
		}
		sb.WriteString("]")
	}
	return sb.String()
}

func newError(path, ruleID, msg string) error {
	return &Error{Path: path, RuleID: ruleID, Message: msg}
}

func typeError(path, want string, got any) error {
	return newError(path, RuleType, fmt.Sprintf("expected %s, got %s", want, describe(got)))
}

// IsValidation reports whether err is (or wraps) a *Error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// RuleID returns the stable RuleID of a validation error, or "" if err is not one.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		if _, ok := asNumber(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

func join(path, key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return path + "/" + key
}
