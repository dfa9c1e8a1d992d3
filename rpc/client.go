// Package rpc is a minimal Sui full node JSON-RPC client covering the object
// read methods used by package suiobj.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"xdao.co/suiobj/suiobj"
)

// Sui JSON-RPC methods.
const (
	MethodGetOwnedObjects = "suix_getOwnedObjects"
	MethodGetObject       = "sui_getObject"
	MethodMultiGetObjects = "sui_multiGetObjects"
)

const maxResponseBytes = 32 << 20

var tracer = otel.Tracer("xdao.co/suiobj/rpc")

var _ suiobj.Node = (*Client)(nil)

type Options struct {
	// HTTPClient is used for all requests. If nil, a client without a global
	// timeout is used; per-request deadlines come from Timeout and the caller's ctx.
	HTTPClient *http.Client

	// Timeout applies per request when non-zero.
	Timeout time.Duration

	// PageLimit is the page size requested for owned-object queries.
	// Zero leaves the choice to the node.
	PageLimit int
}

// Client talks to one full node endpoint. It is safe for concurrent use.
type Client struct {
	url       string
	http      *http.Client
	timeout   time.Duration
	pageLimit int
	nextID    atomic.Uint64
}

func New(url string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{url: url, http: hc, timeout: opts.Timeout, pageLimit: opts.PageLimit}
}

// URL returns the node endpoint.
func (c *Client) URL() string { return c.url }

// Call invokes method with params and decodes the result into out (which may
// be nil to discard it).
//
// Every failure (transport, HTTP status, node error object, undecodable
// result) is reported as a suiobj KindNetwork error; node error objects can
// be recovered with errors.As into *Error.
func (c *Client) Call(ctx context.Context, method string, params []any, out any) error {
	ctx, span := tracer.Start(ctx, method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.system", "jsonrpc"),
			attribute.String("rpc.method", method),
		),
	)
	defer span.End()

	if err := c.call(ctx, method, params, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return suiobj.NewNetworkError(method, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(Request{JSONRPC: "2.0", ID: c.nextID.Add(1), Method: method, Params: params})
	if err != nil {
		return errors.Wrap(err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "post request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet(data)))
	}

	var rr Response
	if err := json.Unmarshal(data, &rr); err != nil {
		return errors.Wrap(err, "decode response")
	}
	if rr.Error != nil {
		return rr.Error
	}
	if out == nil {
		return nil
	}
	if len(rr.Result) == 0 || string(rr.Result) == "null" {
		return errors.New("response has no result")
	}
	if err := json.Unmarshal(rr.Result, out); err != nil {
		return errors.Wrapf(err, "decode %s result", method)
	}
	return nil
}

func snippet(b []byte) []byte {
	const max = 256
	if len(b) > max {
		return b[:max]
	}
	return b
}

// GetOwnedObjects fetches one page of objects owned by req.Owner.
func (c *Client) GetOwnedObjects(ctx context.Context, req suiobj.OwnedObjectsRequest) (*suiobj.ObjectsPage, error) {
	query := map[string]any{"options": req.Options}
	if req.Filter != nil {
		query["filter"] = req.Filter
	}
	var cursor any
	if req.Cursor != nil {
		cursor = *req.Cursor
	}
	var limit any
	if c.pageLimit > 0 {
		limit = c.pageLimit
	}

	var page suiobj.ObjectsPage
	if err := c.Call(ctx, MethodGetOwnedObjects, []any{req.Owner, query, cursor, limit}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetObject fetches a single object.
func (c *Client) GetObject(ctx context.Context, id string, opts suiobj.ObjectDataOptions) (*suiobj.ObjectResponse, error) {
	var resp suiobj.ObjectResponse
	if err := c.Call(ctx, MethodGetObject, []any{id, opts}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MultiGetObjects fetches several objects in one request, in the order of ids.
func (c *Client) MultiGetObjects(ctx context.Context, ids []string, opts suiobj.ObjectDataOptions) ([]suiobj.ObjectResponse, error) {
	var resp []suiobj.ObjectResponse
	if err := c.Call(ctx, MethodMultiGetObjects, []any{ids, opts}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
