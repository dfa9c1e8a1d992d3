package suiobj

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/suiobj/schema"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestParse_RejectsNonObjectContent(t *testing.T) {
	cases := map[string]*ObjectResponse{
		"nil response": nil,
		"no data":      mustResponse(`{"error":{"code":"notExists","object_id":"0x1"}}`),
		"no content":   mustResponse(`{"data":{"objectId":"0x1","version":"1","digest":"d"}}`),
		"package":      mustResponse(`{"data":{"objectId":"0x2","version":"1","digest":"d","content":{"dataType":"package","disassembled":{"hero":"..."}}}}`),
		"unknown kind": mustResponse(`{"data":{"objectId":"0x3","version":"1","digest":"d","content":{"dataType":"wrapped","fields":{}}}}`),
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(resp, ticketSchema)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindMalformedResponse))
			assert.Equal(t, "SUIOBJ-PARSE-001", RuleID(err))

			// Independent of the schema.
			_, err = Parse(resp, schema.Any())
			assert.True(t, IsKind(err, KindMalformedResponse))
		})
	}
}

func TestParse_ReturnsSchemaValue(t *testing.T) {
	resp := mustResponse(`{"data":{
		"objectId":"0x5","version":"7","digest":"d",
		"content":{"dataType":"moveObject","type":"0xabc::hero::MintTicket","hasPublicTransfer":true,
			"fields":{"id":{"id":"0x5"},"character":2}}}}`)
	before, err := json.Marshal(resp)
	require.NoError(t, err)

	got, err := Parse(resp, ticketSchema)
	require.NoError(t, err)
	assert.Equal(t, ticket{ID: ObjectID{ID: "0x5"}, Character: 2}, got)

	after, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestParse_SchemaMismatchIsNotWrapped(t *testing.T) {
	resp := mustResponse(`{"data":{"objectId":"0x5","version":"7","digest":"d",
		"content":{"dataType":"moveObject","fields":{"id":{"id":"0x5"},"character":true}}}}`)

	_, err := Parse(resp, ticketSchema)
	require.Error(t, err)
	se, ok := err.(*schema.Error)
	require.True(t, ok, "expected *schema.Error, got %T", err)
	assert.Equal(t, "/character", se.Path)
	assert.True(t, IsSchemaValidation(err))
	assert.False(t, IsKind(err, KindMalformedResponse))
	assert.Equal(t, schema.RuleType, RuleID(err))
}

func TestParse_NumbersKeepPrecision(t *testing.T) {
	type coin struct{ Balance string }
	balance := schema.Type(schema.Required("balance", schema.Any(), func(c *coin, v any) {
		c.Balance = v.(json.Number).String()
	}))
	resp := mustResponse(`{"data":{"objectId":"0x9","version":"1","digest":"d",
		"content":{"dataType":"moveObject","fields":{"balance":18446744073709551615,"id":{"id":"0x9"}}}}}`)

	got, err := Parse(resp, balance)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", got.Balance)
}

func TestParseWithOwner_MissingOwner(t *testing.T) {
	buf := captureLog(t)
	resp := mustResponse(`{"data":{"objectId":"0x5","version":"7","digest":"d",
		"content":{"dataType":"moveObject","fields":{"id":{"id":"0x5"},"character":1}}}}`)

	_, err := ParseWithOwner(resp, ticketSchema)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMissingOwner))
	assert.False(t, IsKind(err, KindMalformedResponse))
	assert.Equal(t, "SUIOBJ-PARSE-002", RuleID(err))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "response doesn't contain an owner", entry["message"])
	assert.NotEmpty(t, entry["response_cid"])
	assert.Equal(t, "0x5", entry["response"].(map[string]any)["data"].(map[string]any)["objectId"])
}

func TestParseWithOwner_NilResponse(t *testing.T) {
	captureLog(t)
	_, err := ParseWithOwner(nil, ticketSchema)
	assert.True(t, IsKind(err, KindMissingOwner))
}

func TestParseWithOwner_MalformedWithOwner(t *testing.T) {
	buf := captureLog(t)
	resp := mustResponse(`{"data":{"objectId":"0x2","version":"1","digest":"d","owner":"Immutable",
		"content":{"dataType":"package","disassembled":{}}}}`)

	_, err := ParseWithOwner(resp, ticketSchema)
	assert.True(t, IsKind(err, KindMalformedResponse))
	assert.Zero(t, buf.Len())
}

func TestParseWithOwner_UnknownOwnerShapeIsSchemaError(t *testing.T) {
	buf := captureLog(t)
	resp := mustResponse(`{"data":{"objectId":"0x5","version":"7","digest":"d",
		"owner":{"ConsensusAddressOwner":{"owner":"0xfeed","start_version":3}},
		"content":{"dataType":"moveObject","fields":{"id":{"id":"0x5"},"character":1}}}}`)

	// The value itself still parses; only owner-aware parsing rejects it.
	_, err := Parse(resp, ticketSchema)
	require.NoError(t, err)

	_, err = ParseWithOwner(resp, ticketSchema)
	require.Error(t, err)
	assert.True(t, IsSchemaValidation(err))
	assert.Equal(t, schema.RuleUnion, RuleID(err))
	assert.False(t, IsKind(err, KindMissingOwner))
	assert.False(t, IsNetwork(err))
	assert.Zero(t, buf.Len())
}

func TestParseWithOwner_MergesOwnerAtTopLevel(t *testing.T) {
	resp := mustResponse(`{"data":{"objectId":"0x5","version":"7","digest":"d",
		"owner":{"AddressOwner":"0xfeed"},
		"content":{"dataType":"moveObject","fields":{"id":{"id":"0x5"},"character":1}}}}`)

	got, err := ParseWithOwner(resp, ticketSchema)
	require.NoError(t, err)
	assert.Equal(t, ticket{ID: ObjectID{ID: "0x5"}, Character: 1}, got.Value)
	assert.Equal(t, NewAddressOwner("0xfeed"), got.Owner)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":{"id":"0x5"},"character":1,"owner":{"AddressOwner":"0xfeed"}}`, string(b))

	var back Owned[ticket]
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, got, back)
}

func TestOwned_MarshalRequiresObjectValue(t *testing.T) {
	_, err := json.Marshal(Owned[string]{Value: "x", Owner: ImmutableOwner()})
	require.Error(t, err)
}

func TestOwned_UnmarshalRequiresOwner(t *testing.T) {
	var o Owned[ticket]
	err := json.Unmarshal([]byte(`{"id":{"id":"0x5"},"character":1}`), &o)
	require.Error(t, err)
	assert.True(t, IsSchemaValidation(err))
}

func TestSharedSchemas(t *testing.T) {
	digest := "11111111111111111111111111111111"
	w, err := schema.Create(map[string]any{"txDigest": digest, "extra": 1}, WithTxDigestSchema)
	require.NoError(t, err)
	assert.Equal(t, digest, w.TxDigest)

	// txDigest is opaque; no digest encoding is enforced.
	w, err = schema.Create(map[string]any{"txDigest": "not-base58-0OIl"}, WithTxDigestSchema)
	require.NoError(t, err)
	assert.Equal(t, "not-base58-0OIl", w.TxDigest)

	_, err = schema.Create(map[string]any{"recipient": "0x1", "extra": 1}, SendTargetSchema)
	assert.Equal(t, schema.RuleUnknown, RuleID(err))

	id, err := schema.Create(map[string]any{"id": "0x1"}, ObjectIDSchema)
	require.NoError(t, err)
	assert.Equal(t, ObjectID{ID: "0x1"}, id)
}
