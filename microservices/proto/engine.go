// Package proto declares the gomoku3.Engine gRPC service. Requests and replies
// are google.protobuf.Struct values so no generated message code is needed.
//
// Request fields:  board_size (number), color ("b"|"w"), moves (list of {color, coordinates}).
// Reply fields:    bot_move, color, request_id, playouts, winprob, best_ten (list of {move, rate}).
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	EngineService_ServiceName                 = "gomoku3.Engine"
	EngineService_GenerateMove_FullMethodName = "/gomoku3.Engine/GenerateMove"
)

type EngineServiceClient interface {
	GenerateMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type engineServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEngineServiceClient(cc grpc.ClientConnInterface) EngineServiceClient {
	return &engineServiceClient{cc}
}

func (c *engineServiceClient) GenerateMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, EngineService_GenerateMove_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type EngineServiceServer interface {
	GenerateMove(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedEngineServiceServer can be embedded to have forward compatible implementations.
type UnimplementedEngineServiceServer struct{}

func (UnimplementedEngineServiceServer) GenerateMove(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateMove not implemented")
}

func RegisterEngineServiceServer(s grpc.ServiceRegistrar, srv EngineServiceServer) {
	s.RegisterService(&EngineService_ServiceDesc, srv)
}

func _EngineService_GenerateMove_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServiceServer).GenerateMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EngineService_GenerateMove_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EngineServiceServer).GenerateMove(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var EngineService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: EngineService_ServiceName,
	HandlerType: (*EngineServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateMove",
			Handler:    _EngineService_GenerateMove_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "microservices/proto/engine.go",
}
