package suiobj

import (
	"encoding/json"

	"xdao.co/suiobj/schema"
)

// ObjectID is the UID member every Sui object carries as `id: {id: "0x…"}`.
type ObjectID struct {
	ID string `json:"id"`
}

var ObjectIDSchema = schema.Object(
	schema.Required("id", schema.String(), func(o *ObjectID, v string) { o.ID = v }),
)

// WithTxDigest is attached to results of write operations. The digest is
// kept as an opaque string; use schema.Digest to also check its encoding.
type WithTxDigest struct {
	TxDigest string `json:"txDigest"`
}

var WithTxDigestSchema = schema.Type(
	schema.Required("txDigest", schema.String(), func(w *WithTxDigest, v string) { w.TxDigest = v }),
)

// WithOwner is the ownership part of an owner-aware result.
type WithOwner struct {
	Owner ObjectOwner `json:"owner"`
}

var WithOwnerSchema = schema.Type(
	schema.Required("owner", ObjectOwnerSchema, func(w *WithOwner, v ObjectOwner) { w.Owner = v }),
)

// SendTarget names the recipient of an outbound transfer.
type SendTarget struct {
	Recipient string `json:"recipient"`
}

var SendTargetSchema = schema.Object(
	schema.Required("recipient", schema.String(), func(s *SendTarget, v string) { s.Recipient = v }),
)

// Content kinds reported in ParsedData.DataType.
const (
	DataTypeMoveObject = "moveObject"
	DataTypePackage    = "package"
)

// ObjectResponse is one entry of a node's object query result.
// Exactly one of Data or Error is normally set.
type ObjectResponse struct {
	Data  *ObjectData          `json:"data,omitempty"`
	Error *ObjectResponseError `json:"error,omitempty"`
}

// ObjectData is the body of an object response. Which members are populated
// depends on the ObjectDataOptions of the query.
type ObjectData struct {
	ObjectID            string       `json:"objectId"`
	Version             string       `json:"version"`
	Digest              string       `json:"digest"`
	Type                string       `json:"type,omitempty"`
	Owner               *ObjectOwner `json:"owner,omitempty"`
	PreviousTransaction string       `json:"previousTransaction,omitempty"`
	StorageRebate       string       `json:"storageRebate,omitempty"`
	Content             *ParsedData  `json:"content,omitempty"`
}

// ParsedData is the decoded content of an object.
//
// Fields holds the Move struct fields for DataTypeMoveObject; numbers keep
// their exact textual form (json.Number).
type ParsedData struct {
	DataType          string         `json:"dataType"`
	Type              string         `json:"type,omitempty"`
	HasPublicTransfer bool           `json:"hasPublicTransfer,omitempty"`
	Fields            any            `json:"fields,omitempty"`
	Disassembled      map[string]any `json:"disassembled,omitempty"`
}

func (p *ParsedData) UnmarshalJSON(b []byte) error {
	type plain ParsedData
	var aux struct {
		plain
		Fields json.RawMessage `json:"fields,omitempty"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = ParsedData(aux.plain)
	p.Fields = nil
	if len(aux.Fields) > 0 {
		fields, err := decodeGeneric(aux.Fields)
		if err != nil {
			return err
		}
		p.Fields = fields
	}
	return nil
}

// ObjectResponseError reports why a node could not return an object
// (e.g. "notExists", "deleted").
type ObjectResponseError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id,omitempty"`
	Version  string `json:"version,omitempty"`
	Digest   string `json:"digest,omitempty"`
}

// ObjectDataOptions selects which members of ObjectData a node returns.
type ObjectDataOptions struct {
	ShowType                bool `json:"showType,omitempty"`
	ShowOwner               bool `json:"showOwner,omitempty"`
	ShowPreviousTransaction bool `json:"showPreviousTransaction,omitempty"`
	ShowDisplay             bool `json:"showDisplay,omitempty"`
	ShowContent             bool `json:"showContent,omitempty"`
	ShowBcs                 bool `json:"showBcs,omitempty"`
	ShowStorageRebate       bool `json:"showStorageRebate,omitempty"`
}

// ObjectFilter restricts an owned-objects query.
type ObjectFilter struct {
	MatchAll   []ObjectFilter `json:"MatchAll,omitempty"`
	StructType string         `json:"StructType,omitempty"`
}

// content returns the parsed content of resp, or nil if there is none.
func (r *ObjectResponse) content() *ParsedData {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data.Content
}
