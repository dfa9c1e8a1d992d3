package suiobj

import (
	"errors"

	"xdao.co/suiobj/schema"
)

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Schema mismatches are not wrapped: they surface as *schema.Error (see
// IsSchemaValidation).
type Kind string

const (
	// KindMalformedResponse: the response is not a live Move object with fields.
	KindMalformedResponse Kind = "MalformedResponse"

	// KindMissingOwner: ownership metadata was required but absent. Callers may
	// choose to retry, since the node can lag behind when indexing ownership.
	KindMissingOwner Kind = "MissingOwner"

	// KindNetwork: the node (or a proxy in front of it) failed a request.
	KindNetwork Kind = "Network"

	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., SUIOBJ-PARSE-001) naming the check that
// failed. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// NewNetworkError classifies a failed node request. op names the request
// (typically the RPC method); cause is preserved for errors.As/errors.Is.
func NewNetworkError(op string, cause error) error {
	return &Error{Kind: KindNetwork, RuleID: "SUIOBJ-NET-001", Message: op, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsNetwork reports whether err came from a node request.
func IsNetwork(err error) bool { return IsKind(err, KindNetwork) }

// IsSchemaValidation reports whether err is a schema mismatch.
func IsSchemaValidation(err error) bool { return schema.IsValidation(err) }

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
// Schema validation errors report their schema RuleID.
func RuleID(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.RuleID
	}
	return schema.RuleID(err)
}
