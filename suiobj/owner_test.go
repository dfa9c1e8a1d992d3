package suiobj

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerAddress_Total(t *testing.T) {
	cases := []struct {
		owner  ObjectOwner
		want   string
		wantOK bool
	}{
		{owner: NewAddressOwner("0xa"), want: "0xa", wantOK: true},
		{owner: NewObjectOwner("0xparent"), want: "0xparent", wantOK: true},
		{owner: NewSharedOwner("42")},
		{owner: ImmutableOwner()},
		{owner: ObjectOwner{}},
	}
	for _, tc := range cases {
		got, ok := OwnerAddress(tc.owner)
		assert.Equal(t, tc.want, got, tc.owner.Kind.String())
		assert.Equal(t, tc.wantOK, ok, tc.owner.Kind.String())
	}
}

func TestObjectOwner_DecodeWireShapes(t *testing.T) {
	cases := map[string]ObjectOwner{
		`{"AddressOwner":"0xa"}`:                     NewAddressOwner("0xa"),
		`{"ObjectOwner":"0xb"}`:                      NewObjectOwner("0xb"),
		`{"Shared":{"initial_shared_version":"17"}}`: NewSharedOwner("17"),
		`{"Shared":{"initial_shared_version":17}}`:   NewSharedOwner("17"),
		`"Immutable"`:                                ImmutableOwner(),
	}
	for doc, want := range cases {
		var got ObjectOwner
		require.NoError(t, json.Unmarshal([]byte(doc), &got), doc)
		assert.Equal(t, want, got, doc)
	}
}

func TestObjectOwner_UnknownShapesDecodeThenFailValidate(t *testing.T) {
	for _, doc := range []string{
		`"Mutable"`,
		`{}`,
		`{"AddressOwner":7}`,
		`{"AddressOwner":"0xa","ObjectOwner":"0xb"}`,
		`{"Shared":{}}`,
		`{"ConsensusAddressOwner":{"owner":"0xa","start_version":3}}`,
		`null`,
	} {
		var got ObjectOwner
		require.NoError(t, json.Unmarshal([]byte(doc), &got), doc)
		assert.Equal(t, OwnerUnknown, got.Kind, doc)

		_, ok := OwnerAddress(got)
		assert.False(t, ok, doc)

		err := got.Validate()
		require.Error(t, err, doc)
		assert.True(t, IsSchemaValidation(err), doc)
		assert.False(t, IsNetwork(err), doc)

		// The original shape survives re-encoding.
		b, err := json.Marshal(got)
		require.NoError(t, err, doc)
		assert.JSONEq(t, doc, string(b))
	}
}

func TestObjectOwner_MalformedJSONFailsDecode(t *testing.T) {
	var got ObjectOwner
	assert.Error(t, got.UnmarshalJSON([]byte(`{"AddressOwner":`)))
}

func TestObjectOwner_ValidateKnownShapes(t *testing.T) {
	for _, o := range []ObjectOwner{
		NewAddressOwner("0xa"),
		NewObjectOwner("0xb"),
		NewSharedOwner("3"),
		ImmutableOwner(),
	} {
		assert.NoError(t, o.Validate(), o.Kind.String())
	}
	assert.True(t, IsSchemaValidation(ObjectOwner{}.Validate()))
}

func TestObjectOwner_EncodeRoundTrip(t *testing.T) {
	for _, o := range []ObjectOwner{
		NewAddressOwner("0xa"),
		NewObjectOwner("0xb"),
		NewSharedOwner("3"),
		ImmutableOwner(),
	} {
		b, err := json.Marshal(o)
		require.NoError(t, err)
		var back ObjectOwner
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, o, back)
	}

	_, err := json.Marshal(ObjectOwner{})
	require.Error(t, err)
}

func TestObjectResponse_NullOwnerIsAbsent(t *testing.T) {
	resp := mustResponse(`{"data":{"objectId":"0x1","version":"1","digest":"d","owner":null}}`)
	assert.Nil(t, resp.Data.Owner)
}
