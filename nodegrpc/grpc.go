package nodegrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// NodeReaderServer is the server API for the NodeReader gRPC service.
//
// Messages are protobuf well-known wrapper types carrying JSON documents, so
// this package does not require a protoc/codegen toolchain and Move field
// numbers cross the proxy unchanged.
//
// Proto definition: node_reader.proto.
type NodeReaderServer interface {
	// GetOwnedObjects: OwnedObjectsRequest JSON in, ObjectsPage JSON out.
	GetOwnedObjects(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	// GetObject: ObjectRequest JSON in, ObjectResponse JSON out.
	GetObject(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	// ListOwnedObjects: ListRequest JSON in, one ObjectResponse JSON per message.
	ListOwnedObjects(*wrapperspb.BytesValue, grpc.ServerStreamingServer[wrapperspb.BytesValue]) error
}

// UnimplementedNodeReaderServer can be embedded to have forward compatible implementations.
type UnimplementedNodeReaderServer struct{}

func (UnimplementedNodeReaderServer) GetOwnedObjects(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOwnedObjects not implemented")
}
func (UnimplementedNodeReaderServer) GetObject(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetObject not implemented")
}
func (UnimplementedNodeReaderServer) ListOwnedObjects(*wrapperspb.BytesValue, grpc.ServerStreamingServer[wrapperspb.BytesValue]) error {
	return status.Error(codes.Unimplemented, "method ListOwnedObjects not implemented")
}

// RegisterNodeReaderServer registers the NodeReader service on a gRPC server.
func RegisterNodeReaderServer(s grpc.ServiceRegistrar, srv NodeReaderServer) {
	s.RegisterService(&NodeReader_ServiceDesc, srv)
}

// NodeReaderClient is the client API for the NodeReader gRPC service.
type NodeReaderClient interface {
	GetOwnedObjects(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	GetObject(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	ListOwnedObjects(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[wrapperspb.BytesValue], error)
}

const (
	serviceName            = "xdao.suiobj.nodegrpc.v1.NodeReader"
	methodGetOwnedObjects  = "/" + serviceName + "/GetOwnedObjects"
	methodGetObject        = "/" + serviceName + "/GetObject"
	methodListOwnedObjects = "/" + serviceName + "/ListOwnedObjects"
)

type nodeReaderClient struct{ cc grpc.ClientConnInterface }

func NewNodeReaderClient(cc grpc.ClientConnInterface) NodeReaderClient {
	return &nodeReaderClient{cc: cc}
}

func (c *nodeReaderClient) GetOwnedObjects(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, methodGetOwnedObjects, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeReaderClient) GetObject(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, methodGetObject, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeReaderClient) ListOwnedObjects(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[wrapperspb.BytesValue], error) {
	stream, err := c.cc.NewStream(ctx, &NodeReader_ServiceDesc.Streams[0], methodListOwnedObjects, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.BytesValue, wrapperspb.BytesValue]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func _NodeReader_GetOwnedObjects_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeReaderServer).GetOwnedObjects(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetOwnedObjects}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeReaderServer).GetOwnedObjects(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _NodeReader_GetObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeReaderServer).GetObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetObject}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeReaderServer).GetObject(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _NodeReader_ListOwnedObjects_Handler(srv interface{}, stream grpc.ServerStream) error {
	in := new(wrapperspb.BytesValue)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(NodeReaderServer).ListOwnedObjects(in, &grpc.GenericServerStream[wrapperspb.BytesValue, wrapperspb.BytesValue]{ServerStream: stream})
}

// NodeReader_ServiceDesc is the grpc.ServiceDesc for the NodeReader service.
var NodeReader_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*NodeReaderServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetOwnedObjects", Handler: _NodeReader_GetOwnedObjects_Handler},
		{MethodName: "GetObject", Handler: _NodeReader_GetObject_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "ListOwnedObjects", Handler: _NodeReader_ListOwnedObjects_Handler, ServerStreams: true},
	},
	Metadata: "node_reader.proto",
}
