package suiobj

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"xdao.co/suiobj/schema"
)

// ----- test helpers -----

const ticketType = "0xabc::hero::MintTicket"

type ticket struct {
	ID        ObjectID `json:"id"`
	Character uint8    `json:"character"`
}

var ticketSchema = schema.Object(
	schema.Required("id", ObjectIDSchema, func(t *ticket, v ObjectID) { t.ID = v }),
	schema.Required("character", schema.Uint8(), func(t *ticket, v uint8) { t.Character = v }),
)

func ticketObject(id string, character int) ObjectResponse {
	return ObjectResponse{Data: &ObjectData{
		ObjectID: id,
		Version:  "1",
		Digest:   "11111111111111111111111111111111",
		Content: &ParsedData{
			DataType:          DataTypeMoveObject,
			Type:              ticketType,
			HasPublicTransfer: true,
			Fields: map[string]any{
				"id":        map[string]any{"id": id},
				"character": json.Number(strconv.Itoa(character)),
			},
		},
	}}
}

func mustResponse(doc string) *ObjectResponse {
	var r ObjectResponse
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		panic(err)
	}
	return &r
}

// pagedNode is a stateless fake node: the page returned depends only on the
// request cursor. Page i is served for cursor "c<i>" (page 0 for no cursor).
type pagedNode struct {
	pages [][]ObjectResponse
	// errAt fails the request for the given page index.
	errAt map[int]error
	// endless keeps reporting another page after the last one, repeating the
	// last page's objects.
	endless bool

	calls []OwnedObjectsRequest
}

func (n *pagedNode) GetOwnedObjects(ctx context.Context, req OwnedObjectsRequest) (*ObjectsPage, error) {
	n.calls = append(n.calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := 0
	if req.Cursor != nil {
		if _, err := fmt.Sscanf(*req.Cursor, "c%d", &idx); err != nil {
			return nil, fmt.Errorf("bad cursor %q", *req.Cursor)
		}
	}
	if err := n.errAt[idx]; err != nil {
		return nil, err
	}

	page := &ObjectsPage{}
	switch {
	case idx < len(n.pages):
		page.Data = append([]ObjectResponse(nil), n.pages[idx]...)
	case n.endless && len(n.pages) > 0:
		page.Data = append([]ObjectResponse(nil), n.pages[len(n.pages)-1]...)
	}
	if idx+1 < len(n.pages) || n.endless {
		next := fmt.Sprintf("c%d", idx+1)
		page.NextCursor = &next
		page.HasNextPage = true
	}
	return page, nil
}

func cursors(calls []OwnedObjectsRequest) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		if c.Cursor == nil {
			out = append(out, "<nil>")
			continue
		}
		out = append(out, *c.Cursor)
	}
	return out
}
