package nodegrpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/suiobj/rpc"
	"xdao.co/suiobj/suiobj"
)

// mapErr converts a node failure into a gRPC status for the wire.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *rpc.Error
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.As(err, &rpcErr) && rpcErr.Code == rpc.CodeInvalidParams:
		// The node rejected the query itself (e.g. a malformed owner address).
		return status.Error(codes.InvalidArgument, err.Error())
	case suiobj.IsNetwork(err):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// mapRPC converts a failed proxy call back into the suiobj taxonomy. Every
// failure is a network error from the caller's point of view; cancellation
// and deadlines stay visible to errors.Is.
func mapRPC(op string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return suiobj.NewNetworkError(op, err)
	}
	switch st.Code() {
	case codes.Canceled:
		return suiobj.NewNetworkError(op, fmt.Errorf("%w: %s", context.Canceled, st.Message()))
	case codes.DeadlineExceeded:
		return suiobj.NewNetworkError(op, fmt.Errorf("%w: %s", context.DeadlineExceeded, st.Message()))
	default:
		return suiobj.NewNetworkError(op, err)
	}
}
