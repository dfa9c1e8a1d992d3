package suiobj

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"xdao.co/suiobj/schema"
)

// OwnerKind tags the active variant of an ObjectOwner.
type OwnerKind int

const (
	// OwnerUnknown is the zero value, and the kind of an owner decoded from an
	// unrecognized wire shape.
	OwnerUnknown OwnerKind = iota
	// OwnedByAddress: owned exclusively by one external address.
	OwnedByAddress
	// OwnedByObject: owned by another object (parent-child ownership).
	OwnedByObject
	// Shared: no single owner; versioned from InitialSharedVersion.
	Shared
	// Immutable: no owner; the object can never be mutated again.
	Immutable
)

func (k OwnerKind) String() string {
	switch k {
	case OwnedByAddress:
		return "AddressOwner"
	case OwnedByObject:
		return "ObjectOwner"
	case Shared:
		return "Shared"
	case Immutable:
		return "Immutable"
	default:
		return "Unknown"
	}
}

// ObjectOwner describes who controls an on-chain object.
//
// Kind fully determines which fields are meaningful: Address for
// OwnedByAddress and OwnedByObject, InitialSharedVersion for Shared, neither
// for Immutable.
//
// An owner decoded from a shape this package does not recognize has Kind
// OwnerUnknown and keeps its original JSON; Validate reports why it failed.
type ObjectOwner struct {
	Kind                 OwnerKind
	Address              string
	InitialSharedVersion string

	raw string
}

func NewAddressOwner(address string) ObjectOwner {
	return ObjectOwner{Kind: OwnedByAddress, Address: address}
}

func NewObjectOwner(parent string) ObjectOwner {
	return ObjectOwner{Kind: OwnedByObject, Address: parent}
}

func NewSharedOwner(initialSharedVersion string) ObjectOwner {
	return ObjectOwner{Kind: Shared, InitialSharedVersion: initialSharedVersion}
}

func ImmutableOwner() ObjectOwner {
	return ObjectOwner{Kind: Immutable}
}

// OwnerAddress returns the controlling address of an object.
//
// Address-owned and object-owned objects both report their owner's address;
// callers that care which of the two applies must inspect owner.Kind first.
// Shared and immutable objects have no single controlling address and report
// ok == false.
func OwnerAddress(owner ObjectOwner) (address string, ok bool) {
	switch owner.Kind {
	case OwnedByAddress, OwnedByObject:
		return owner.Address, true
	default:
		return "", false
	}
}

type sharedOwner struct {
	initialSharedVersion string
}

// Sui nodes encode initial_shared_version as a JSON number; older payloads
// and fixtures use a decimal string. Both normalize to the decimal string.
var sequenceNumber = schema.Union(
	schema.String(),
	schema.Map(schema.Integer(), func(i int64) string { return strconv.FormatInt(i, 10) }),
)

// ObjectOwnerSchema validates the four wire shapes of an owner:
//
//	{"AddressOwner": "0x…"}
//	{"ObjectOwner": "0x…"}
//	{"Shared": {"initial_shared_version": "…"}}
//	"Immutable"
var ObjectOwnerSchema = schema.Union(
	schema.Object(schema.Required("AddressOwner", schema.String(), func(o *ObjectOwner, v string) {
		*o = NewAddressOwner(v)
	})),
	schema.Object(schema.Required("ObjectOwner", schema.String(), func(o *ObjectOwner, v string) {
		*o = NewObjectOwner(v)
	})),
	schema.Object(schema.Required("Shared",
		schema.Object(schema.Required("initial_shared_version", sequenceNumber, func(s *sharedOwner, v string) {
			s.initialSharedVersion = v
		})),
		func(o *ObjectOwner, s sharedOwner) { *o = NewSharedOwner(s.initialSharedVersion) },
	)),
	schema.Map(schema.Literal("Immutable"), func(string) ObjectOwner { return ImmutableOwner() }),
)

// MarshalJSON encodes the owner in its wire shape.
func (o ObjectOwner) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OwnedByAddress:
		return json.Marshal(map[string]string{"AddressOwner": o.Address})
	case OwnedByObject:
		return json.Marshal(map[string]string{"ObjectOwner": o.Address})
	case Shared:
		return json.Marshal(map[string]any{
			"Shared": map[string]string{"initial_shared_version": o.InitialSharedVersion},
		})
	case Immutable:
		return json.Marshal("Immutable")
	default:
		if o.raw != "" {
			return []byte(o.raw), nil
		}
		return nil, fmt.Errorf("suiobj: cannot encode owner of kind %s", o.Kind)
	}
}

// UnmarshalJSON decodes an owner. A shape that ObjectOwnerSchema rejects is
// not a decode error: it is kept as an OwnerUnknown owner so one odd object
// does not fail the page it arrived in. Only malformed JSON fails here.
func (o *ObjectOwner) UnmarshalJSON(b []byte) error {
	raw, err := decodeGeneric(b)
	if err != nil {
		return err
	}
	v, err := schema.Create(raw, ObjectOwnerSchema)
	if err != nil {
		*o = ObjectOwner{raw: string(bytes.TrimSpace(b))}
		return nil
	}
	*o = v
	return nil
}

// Validate checks the owner against ObjectOwnerSchema. Owners built with the
// constructors or decoded from a known shape are valid; anything else yields
// the *schema.Error describing the mismatch.
func (o ObjectOwner) Validate() error {
	if o.Kind != OwnerUnknown {
		return nil
	}
	var raw any
	if o.raw != "" {
		v, err := decodeGeneric([]byte(o.raw))
		if err != nil {
			return err
		}
		raw = v
	}
	_, err := schema.Create(raw, ObjectOwnerSchema)
	return err
}

func decodeGeneric(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
