package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/suiobj/schema"
	"xdao.co/suiobj/suiobj"
)

// fakeNode records decoded requests and answers each with reply.
type fakeNode struct {
	mu    sync.Mutex
	reqs  []rawRequest
	reply func(rawRequest) (status int, body string)
}

type rawRequest struct {
	ID     uint64            `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func (f *fakeNode) server(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var rr rawRequest
		if err := json.NewDecoder(req.Body).Decode(&rr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.reqs = append(f.reqs, rr)
		f.mu.Unlock()

		code, body := f.reply(rr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func result(doc string) func(rawRequest) (int, string) {
	return func(rr rawRequest) (int, string) {
		return http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":` + doc + `}`
	}
}

func TestGetOwnedObjects_WireFormat(t *testing.T) {
	node := &fakeNode{reply: result(`{"data":[{"data":{"objectId":"0x1","version":"3","digest":"d",
		"content":{"dataType":"moveObject","type":"0xabc::hero::MintTicket","hasPublicTransfer":true,
		"fields":{"id":{"id":"0x1"},"character":1}}}}],"nextCursor":"0x1","hasNextPage":true}`)}
	srv := node.server(t)

	c := New(srv.URL, Options{PageLimit: 25})
	cursor := "0xprev"
	page, err := c.GetOwnedObjects(context.Background(), suiobj.OwnedObjectsQuery("0xowner", "0xabc::hero::MintTicket", &cursor))
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "0x1", page.Data[0].Data.ObjectID)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "0x1", *page.NextCursor)

	require.Len(t, node.reqs, 1)
	rr := node.reqs[0]
	assert.Equal(t, MethodGetOwnedObjects, rr.Method)
	require.Len(t, rr.Params, 4)
	assert.JSONEq(t, `"0xowner"`, string(rr.Params[0]))
	assert.JSONEq(t, `{"filter":{"MatchAll":[{"StructType":"0xabc::hero::MintTicket"}]},"options":{"showContent":true}}`, string(rr.Params[1]))
	assert.JSONEq(t, `"0xprev"`, string(rr.Params[2]))
	assert.JSONEq(t, `25`, string(rr.Params[3]))
}

func TestGetOwnedObjects_FirstPageNullCursorAndLimit(t *testing.T) {
	node := &fakeNode{reply: result(`{"data":[],"nextCursor":null,"hasNextPage":false}`)}
	srv := node.server(t)

	page, err := New(srv.URL, Options{}).GetOwnedObjects(context.Background(), suiobj.OwnedObjectsQuery("0xowner", "", nil))
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Nil(t, page.NextCursor)

	rr := node.reqs[0]
	assert.JSONEq(t, `{"options":{"showContent":true}}`, string(rr.Params[1]))
	assert.Equal(t, "null", string(rr.Params[2]))
	assert.Equal(t, "null", string(rr.Params[3]))
}

func TestGetOwnedObjects_DrivesEnumerator(t *testing.T) {
	node := &fakeNode{}
	node.reply = func(rr rawRequest) (int, string) {
		if string(rr.Params[2]) == "null" {
			return http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":{"data":[{"data":{"objectId":"0x1","version":"1","digest":"d"}}],"nextCursor":"p2","hasNextPage":true}}`
		}
		return http.StatusOK, `{"jsonrpc":"2.0","id":2,"result":{"data":[{"data":{"objectId":"0x2","version":"1","digest":"d"}}],"nextCursor":"p2","hasNextPage":false}}`
	}
	srv := node.server(t)

	var ids []string
	for resp, err := range suiobj.GetOwnedObjects(context.Background(), New(srv.URL, Options{}), "0xowner", "") {
		require.NoError(t, err)
		ids = append(ids, resp.Data.ObjectID)
	}
	assert.Equal(t, []string{"0x1", "0x2"}, ids)
	require.Len(t, node.reqs, 2)
	assert.NotEqual(t, node.reqs[0].ID, node.reqs[1].ID)
}

func TestGetOwnedObjects_UnknownOwnerShapeDoesNotFailPage(t *testing.T) {
	node := &fakeNode{reply: result(`{"data":[
		{"data":{"objectId":"0x1","version":"1","digest":"d","owner":{"AddressOwner":"0xa"},
			"content":{"dataType":"moveObject","fields":{"id":{"id":"0x1"}}}}},
		{"data":{"objectId":"0x2","version":"1","digest":"d","owner":{"ConsensusAddressOwner":{"owner":"0xa","start_version":4}},
			"content":{"dataType":"moveObject","fields":{"id":{"id":"0x2"}}}}}
	],"nextCursor":null,"hasNextPage":false}`)}
	srv := node.server(t)

	var got []*suiobj.ObjectResponse
	for resp, err := range suiobj.GetOwnedObjects(context.Background(), New(srv.URL, Options{}), "0xa", "") {
		require.NoError(t, err)
		got = append(got, resp)
	}
	require.Len(t, got, 2)

	owned, err := suiobj.ParseWithOwner(got[0], schema.Any())
	require.NoError(t, err)
	assert.Equal(t, suiobj.NewAddressOwner("0xa"), owned.Owner)

	_, err = suiobj.ParseWithOwner(got[1], schema.Any())
	require.Error(t, err)
	assert.True(t, suiobj.IsSchemaValidation(err))
	assert.False(t, suiobj.IsNetwork(err))
}

func TestGetObject_WireFormat(t *testing.T) {
	node := &fakeNode{reply: result(`{"data":{"objectId":"0x5","version":"7","digest":"d",
		"owner":{"AddressOwner":"0xfeed"},
		"content":{"dataType":"moveObject","fields":{"id":{"id":"0x5"},"character":2}}}}`)}
	srv := node.server(t)

	resp, err := suiobj.GetObject(context.Background(), New(srv.URL, Options{}), "0x5")
	require.NoError(t, err)
	require.NotNil(t, resp.Data.Owner)
	assert.Equal(t, suiobj.NewAddressOwner("0xfeed"), *resp.Data.Owner)

	rr := node.reqs[0]
	assert.Equal(t, MethodGetObject, rr.Method)
	require.Len(t, rr.Params, 2)
	assert.JSONEq(t, `"0x5"`, string(rr.Params[0]))
	assert.JSONEq(t, `{"showType":true,"showOwner":true,"showContent":true}`, string(rr.Params[1]))
}

func TestMultiGetObjects(t *testing.T) {
	node := &fakeNode{reply: result(`[{"data":{"objectId":"0x1","version":"1","digest":"d"}},{"error":{"code":"notExists","object_id":"0x2"}}]`)}
	srv := node.server(t)

	got, err := New(srv.URL, Options{}).MultiGetObjects(context.Background(), []string{"0x1", "0x2"}, suiobj.ObjectDataOptions{ShowOwner: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0x1", got[0].Data.ObjectID)
	assert.Nil(t, got[1].Data)
	require.NotNil(t, got[1].Error)

	assert.JSONEq(t, `["0x1","0x2"]`, string(node.reqs[0].Params[0]))
}

func TestCall_NodeErrorIsNetworkKind(t *testing.T) {
	node := &fakeNode{reply: func(rawRequest) (int, string) {
		return http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid params"}}`
	}}
	srv := node.server(t)

	_, err := New(srv.URL, Options{}).GetObject(context.Background(), "0x1", suiobj.ObjectDataOptions{})
	require.Error(t, err)
	assert.True(t, suiobj.IsNetwork(err))

	var rpcErr *Error
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, CodeInvalidParams, rpcErr.Code)
	assert.Equal(t, "Invalid params", rpcErr.Message)
}

func TestCall_TransportFailures(t *testing.T) {
	cases := map[string]func(rawRequest) (int, string){
		"http status": func(rawRequest) (int, string) { return http.StatusBadGateway, `upstream down` },
		"bad json":    func(rawRequest) (int, string) { return http.StatusOK, `{"jsonrpc":` },
		"null result": func(rawRequest) (int, string) { return http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":null}` },
		"bad result":  func(rawRequest) (int, string) { return http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":{"data":7}}` },
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			srv := (&fakeNode{reply: reply}).server(t)
			_, err := New(srv.URL, Options{}).GetOwnedObjects(context.Background(), suiobj.OwnedObjectsQuery("0xowner", "", nil))
			require.Error(t, err)
			assert.True(t, suiobj.IsNetwork(err))
			assert.Equal(t, "SUIOBJ-NET-001", suiobj.RuleID(err))
		})
	}
}

func TestCall_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, Options{}).GetObject(context.Background(), "0x1", suiobj.ObjectDataOptions{})
	require.Error(t, err)
	assert.True(t, suiobj.IsNetwork(err))
}

func TestCall_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	// Cleanups run LIFO: unblock the handler before srv.Close waits on it.
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	_, err := New(srv.URL, Options{Timeout: 50 * time.Millisecond}).GetObject(context.Background(), "0x1", suiobj.ObjectDataOptions{})
	require.Error(t, err)
	assert.True(t, suiobj.IsNetwork(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
