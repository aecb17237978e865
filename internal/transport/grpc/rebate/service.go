package rebate

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "rebate.v1.RebateService"

const (
	calculateRebateMethod = "/" + ServiceName + "/CalculateRebate"
	getProductMethod      = "/" + ServiceName + "/GetProduct"
	getRebateMethod       = "/" + ServiceName + "/GetRebate"
)

// RebateServiceServer is the server API for rebate.v1.RebateService.
// Requests and replies are google.protobuf.Struct messages.
type RebateServiceServer interface {
	CalculateRebate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRebate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRebateServiceServer registers srv on s.
func RegisterRebateServiceServer(s grpc.ServiceRegistrar, srv RebateServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes rebate.v1.RebateService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RebateServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CalculateRebate",
			Handler:    unaryHandler(calculateRebateMethod, RebateServiceServer.CalculateRebate),
		},
		{
			MethodName: "GetProduct",
			Handler:    unaryHandler(getProductMethod, RebateServiceServer.GetProduct),
		},
		{
			MethodName: "GetRebate",
			Handler:    unaryHandler(getRebateMethod, RebateServiceServer.GetRebate),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rebate/v1/rebate_service.proto",
}

type unaryMethod func(RebateServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RebateServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(RebateServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls rebate.v1.RebateService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a Client over an existing connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) CalculateRebate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, calculateRebateMethod, in, opts)
}

func (c *Client) GetProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, getProductMethod, in, opts)
}

func (c *Client) GetRebate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, getRebateMethod, in, opts)
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
