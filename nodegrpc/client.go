package nodegrpc

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"xdao.co/suiobj/suiobj"
)

var _ suiobj.Node = (*Client)(nil)

// Client implements suiobj.Node over a NodeReader gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client NodeReaderClient

	// Timeout applies per unary RPC when non-zero. Streams are bounded only by
	// the caller's context.
	Timeout time.Duration
}

type DialOptions struct {
	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int

	// Extra is appended to the default dial options.
	Extra []grpc.DialOption
}

// Dial creates a client for target. The connection is established lazily on
// the first call.
func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}
	dialOpts = append(dialOpts, opts.Extra...)

	cc, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewNodeReaderClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) GetOwnedObjects(ctx context.Context, req suiobj.OwnedObjectsRequest) (*suiobj.ObjectsPage, error) {
	const op = "GetOwnedObjects"
	in, err := encode(req)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.GetOwnedObjects(ctx, in)
	if err != nil {
		return nil, mapRPC(op, err)
	}
	var page suiobj.ObjectsPage
	if err := json.Unmarshal(reply.GetValue(), &page); err != nil {
		return nil, suiobj.NewNetworkError(op, err)
	}
	return &page, nil
}

func (c *Client) GetObject(ctx context.Context, id string, opts suiobj.ObjectDataOptions) (*suiobj.ObjectResponse, error) {
	const op = "GetObject"
	in, err := encode(ObjectRequest{ID: id, Options: opts})
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.GetObject(ctx, in)
	if err != nil {
		return nil, mapRPC(op, err)
	}
	var resp suiobj.ObjectResponse
	if err := json.Unmarshal(reply.GetValue(), &resp); err != nil {
		return nil, suiobj.NewNetworkError(op, err)
	}
	return &resp, nil
}

// ListOwnedObjects streams the owned-objects enumeration run by the server.
// It yields the same sequence as suiobj.GetOwnedObjects against the server's
// node; breaking out of the loop cancels the stream.
func (c *Client) ListOwnedObjects(ctx context.Context, owner, structType string) iter.Seq2[*suiobj.ObjectResponse, error] {
	const op = "ListOwnedObjects"
	return func(yield func(*suiobj.ObjectResponse, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		in, err := encode(ListRequest{Owner: owner, StructType: structType})
		if err != nil {
			yield(nil, err)
			return
		}
		stream, err := c.client.ListOwnedObjects(ctx, in)
		if err != nil {
			yield(nil, mapRPC(op, err))
			return
		}
		for {
			msg, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, mapRPC(op, err))
				return
			}
			var resp suiobj.ObjectResponse
			if err := json.Unmarshal(msg.GetValue(), &resp); err != nil {
				yield(nil, suiobj.NewNetworkError(op, err))
				return
			}
			if !yield(&resp, nil) {
				return
			}
		}
	}
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
