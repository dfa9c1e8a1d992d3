// Package nodegrpc exposes a suiobj.Node over gRPC and consumes such a proxy
// as a suiobj.Node.
//
// Payloads are JSON documents in wrapperspb.BytesValue messages:
//
//	GetOwnedObjects   suiobj.OwnedObjectsRequest -> suiobj.ObjectsPage
//	GetObject         ObjectRequest              -> suiobj.ObjectResponse
//	ListOwnedObjects  ListRequest                -> stream of suiobj.ObjectResponse
package nodegrpc

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/suiobj/suiobj"
)

// ObjectRequest asks for a single object.
type ObjectRequest struct {
	ID      string                   `json:"id"`
	Options suiobj.ObjectDataOptions `json:"options"`
}

// ListRequest asks the server to run the owned-objects enumeration and stream
// every response.
type ListRequest struct {
	Owner      string `json:"owner"`
	StructType string `json:"structType,omitempty"`
}

func encode(v any) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(b), nil
}

func decode(in *wrapperspb.BytesValue, v any) error {
	dec := json.NewDecoder(bytes.NewReader(in.GetValue()))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
