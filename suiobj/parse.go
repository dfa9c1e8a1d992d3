package suiobj

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"xdao.co/suiobj/digest"
	"xdao.co/suiobj/schema"
)

// Parse validates the Move object fields in resp against s.
//
// resp must carry content of kind DataTypeMoveObject; anything else (no data,
// no content, a package) fails with KindMalformedResponse. A schema mismatch
// is returned as the *schema.Error produced by s, unwrapped.
//
// Parse performs no I/O and does not modify resp.
func Parse[T any](resp *ObjectResponse, s schema.Schema[T]) (T, error) {
	var zero T
	content := resp.content()
	if content == nil || content.DataType != DataTypeMoveObject {
		return zero, newError(KindMalformedResponse, "SUIOBJ-PARSE-001", "response content doesn't contain an object with fields")
	}
	return schema.Create(content.Fields, s)
}

// Owned is a parsed value together with the owner reported alongside it.
//
// Its JSON form is the value's members with "owner" added at the top level.
type Owned[T any] struct {
	Value T
	Owner ObjectOwner
}

// ParseWithOwner is Parse plus the owner reported at resp.data.owner.
//
// A response without an owner is logged (with a dump of the response) and
// fails with KindMissingOwner, which is distinct from KindMalformedResponse:
// the node may simply not have been asked for, or not yet indexed, ownership.
// An owner of unrecognized shape fails with the *schema.Error from
// ObjectOwnerSchema.
func ParseWithOwner[T any](resp *ObjectResponse, s schema.Schema[T]) (Owned[T], error) {
	if resp == nil || resp.Data == nil || resp.Data.Owner == nil {
		logMissingOwner(resp)
		return Owned[T]{}, newError(KindMissingOwner, "SUIOBJ-PARSE-002", "response doesn't contain an owner")
	}
	v, err := Parse(resp, s)
	if err != nil {
		return Owned[T]{}, err
	}
	if err := resp.Data.Owner.Validate(); err != nil {
		return Owned[T]{}, err
	}
	return Owned[T]{Value: v, Owner: *resp.Data.Owner}, nil
}

func logMissingOwner(resp *ObjectResponse) {
	b, id, err := digest.Of(resp)
	if err != nil {
		log.Error().Err(err).Msg("response doesn't contain an owner (response not encodable)")
		return
	}
	log.Error().
		Str("response_cid", id.String()).
		RawJSON("response", b).
		Msg("response doesn't contain an owner")
}

func (o Owned[T]) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(o.Value)
	if err != nil {
		return nil, err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return nil, fmt.Errorf("suiobj: owned value must encode as a JSON object: %w", err)
	}
	if members == nil {
		members = make(map[string]json.RawMessage, 1)
	}
	owner, err := json.Marshal(o.Owner)
	if err != nil {
		return nil, err
	}
	members["owner"] = owner
	return json.Marshal(members)
}

func (o *Owned[T]) UnmarshalJSON(b []byte) error {
	raw, err := decodeGeneric(b)
	if err != nil {
		return err
	}
	w, err := schema.Create(raw, WithOwnerSchema)
	if err != nil {
		return err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = v
	o.Owner = w.Owner
	return nil
}
