package suiobj

import (
	"context"
	"iter"

	"xdao.co/suiobj/schema"
)

// OwnedObjectsRequest asks a node for one page of objects owned by Owner.
type OwnedObjectsRequest struct {
	Owner string `json:"owner"`
	// Cursor is nil for the first page, then the previous page's NextCursor.
	Cursor  *string           `json:"cursor,omitempty"`
	Filter  *ObjectFilter     `json:"filter,omitempty"`
	Options ObjectDataOptions `json:"options"`
}

// ObjectsPage is one page of an owned-objects query.
type ObjectsPage struct {
	Data        []ObjectResponse `json:"data"`
	NextCursor  *string          `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}

// OwnedObjectsFetcher fetches one page of owned objects.
type OwnedObjectsFetcher interface {
	GetOwnedObjects(ctx context.Context, req OwnedObjectsRequest) (*ObjectsPage, error)
}

// ObjectGetter fetches a single object by ID.
type ObjectGetter interface {
	GetObject(ctx context.Context, id string, opts ObjectDataOptions) (*ObjectResponse, error)
}

// Node is the full read capability this package consumes.
type Node interface {
	OwnedObjectsFetcher
	ObjectGetter
}

// OwnedObjectsQuery builds the request for one page. structType, when
// non-empty, is the sole filter criterion and must match exactly.
func OwnedObjectsQuery(owner, structType string, cursor *string) OwnedObjectsRequest {
	req := OwnedObjectsRequest{
		Owner:   owner,
		Cursor:  cursor,
		Options: ObjectDataOptions{ShowContent: true},
	}
	if structType != "" {
		req.Filter = &ObjectFilter{MatchAll: []ObjectFilter{{StructType: structType}}}
	}
	return req
}

// GetOwnedObjects enumerates every object owned by owner, optionally only
// those whose Move type is exactly structType.
//
// The sequence is lazy: a page is requested only when the consumer asks for
// the element after the previous page, and every element of a page is
// yielded before the next request. Breaking out of the loop stops the
// enumeration; no further requests are made. Each call starts from the first
// page.
//
// A failed request is yielded once as (nil, err) and ends the sequence.
// There is no retry and no page cap: a node that always reports another page
// is enumerated forever.
func GetOwnedObjects(ctx context.Context, f OwnedObjectsFetcher, owner, structType string) iter.Seq2[*ObjectResponse, error] {
	return func(yield func(*ObjectResponse, error) bool) {
		var cursor *string
		for more := true; more; {
			page, err := f.GetOwnedObjects(ctx, OwnedObjectsQuery(owner, structType, cursor))
			if err != nil {
				yield(nil, err)
				return
			}
			if page == nil {
				yield(nil, newError(KindInternal, "SUIOBJ-ENUM-001", "fetcher returned no page"))
				return
			}
			for i := range page.Data {
				if !yield(&page.Data[i], nil) {
					return
				}
			}
			more = page.HasNextPage
			cursor = page.NextCursor
		}
	}
}

// ParsedOwnedObjects is GetOwnedObjects followed by Parse of every element.
// The first fetch or parse error is yielded and ends the sequence.
func ParsedOwnedObjects[T any](ctx context.Context, f OwnedObjectsFetcher, owner, structType string, s schema.Schema[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for resp, err := range GetOwnedObjects(ctx, f, owner, structType) {
			if err != nil {
				yield(zero, err)
				return
			}
			v, err := Parse(resp, s)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// GetObject fetches one object with its content and owner, ready for
// ParseWithOwner.
func GetObject(ctx context.Context, g ObjectGetter, id string) (*ObjectResponse, error) {
	return g.GetObject(ctx, id, ObjectDataOptions{ShowType: true, ShowOwner: true, ShowContent: true})
}
