package nodegrpc

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/suiobj/suiobj"
)

// Server exposes a suiobj.Node over the NodeReader gRPC service.
type Server struct {
	UnimplementedNodeReaderServer
	Node suiobj.Node
}

func (s *Server) GetOwnedObjects(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	var req suiobj.OwnedObjectsRequest
	if err := decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request: "+err.Error())
	}
	if req.Owner == "" {
		return nil, status.Error(codes.InvalidArgument, "missing owner")
	}
	page, err := s.Node.GetOwnedObjects(ctx, req)
	if err != nil {
		return nil, fail("GetOwnedObjects", err)
	}
	if page == nil {
		return nil, status.Error(codes.Internal, "node returned no page")
	}
	out, err := encode(page)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *Server) GetObject(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	var req ObjectRequest
	if err := decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request: "+err.Error())
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "missing object id")
	}
	resp, err := s.Node.GetObject(ctx, req.ID, req.Options)
	if err != nil {
		return nil, fail("GetObject", err)
	}
	if resp == nil {
		return nil, status.Error(codes.Internal, "node returned no object response")
	}
	out, err := encode(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// ListOwnedObjects runs the enumeration against the backing node and streams
// each response. The enumeration ends when the client goes away.
func (s *Server) ListOwnedObjects(in *wrapperspb.BytesValue, stream grpc.ServerStreamingServer[wrapperspb.BytesValue]) error {
	if s == nil || s.Node == nil {
		return status.Error(codes.FailedPrecondition, "missing node")
	}
	var req ListRequest
	if err := decode(in, &req); err != nil {
		return status.Error(codes.InvalidArgument, "invalid request: "+err.Error())
	}
	if req.Owner == "" {
		return status.Error(codes.InvalidArgument, "missing owner")
	}

	for resp, err := range suiobj.GetOwnedObjects(stream.Context(), s.Node, req.Owner, req.StructType) {
		if err != nil {
			return fail("ListOwnedObjects", err)
		}
		out, err := encode(resp)
		if err != nil {
			return status.Error(codes.Internal, err.Error())
		}
		if err := stream.Send(out); err != nil {
			return err
		}
	}
	return nil
}

func fail(method string, err error) error {
	log.Warn().Err(err).Str("method", method).Msg("node request failed")
	return mapErr(err)
}
