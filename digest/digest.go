// Package digest derives stable content identifiers for node responses.
//
// A response is identified by the CIDv1 (raw multicodec, sha2-256 multihash)
// of its canonical JSON encoding. Two responses that differ only in member
// order or insignificant whitespace share an identifier.
package digest

import (
	"bytes"
	"encoding/json"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Canonical returns the canonical JSON encoding of v: object members sorted
// by key, no insignificant whitespace, numbers preserved as written.
func Canonical(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return CanonicalBytes(b)
}

// CanonicalBytes re-encodes a JSON document in canonical form.
func CanonicalBytes(doc []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// CID returns the CIDv1 (raw + sha2-256) of data.
func CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Of returns the canonical bytes of v together with their CID.
func Of(v any) ([]byte, cid.Cid, error) {
	b, err := Canonical(v)
	if err != nil {
		return nil, cid.Undef, err
	}
	id, err := CID(b)
	if err != nil {
		return nil, cid.Undef, err
	}
	return b, id, nil
}
