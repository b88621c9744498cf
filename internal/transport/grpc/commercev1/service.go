package commercev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "commerce.v1.Platform"

const (
	Platform_CreateResource_FullMethodName = "/commerce.v1.Platform/CreateResource"
	Platform_GetResource_FullMethodName    = "/commerce.v1.Platform/GetResource"
	Platform_MutateResource_FullMethodName = "/commerce.v1.Platform/MutateResource"
	Platform_CreateOrder_FullMethodName    = "/commerce.v1.Platform/CreateOrder"
	Platform_ListProducts_FullMethodName   = "/commerce.v1.Platform/ListProducts"
	Platform_ListOrders_FullMethodName     = "/commerce.v1.Platform/ListOrders"
	Platform_SignUp_FullMethodName         = "/commerce.v1.Platform/SignUp"
	Platform_Login_FullMethodName          = "/commerce.v1.Platform/Login"
)

// PlatformServer is the server API for the commerce.v1.Platform service.
type PlatformServer interface {
	CreateResource(context.Context, *CreateResourceRequest) (*ResourceReply, error)
	GetResource(context.Context, *GetResourceRequest) (*ResourceReply, error)
	MutateResource(context.Context, *MutateResourceRequest) (*ResourceReply, error)
	CreateOrder(context.Context, *CreateOrderRequest) (*ResourceReply, error)
	ListProducts(context.Context, *ListRequest) (*ListResourcesReply, error)
	ListOrders(context.Context, *ListRequest) (*ListResourcesReply, error)
	SignUp(context.Context, *SignUpRequest) (*CustomerReply, error)
	Login(context.Context, *LoginRequest) (*CustomerReply, error)
}

// UnimplementedPlatformServer can be embedded to stay forward compatible.
type UnimplementedPlatformServer struct{}

func (UnimplementedPlatformServer) CreateResource(context.Context, *CreateResourceRequest) (*ResourceReply, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateResource not implemented")
}
func (UnimplementedPlatformServer) GetResource(context.Context, *GetResourceRequest) (*ResourceReply, error) {
	return nil, status.Error(codes.Unimplemented, "method GetResource not implemented")
}
func (UnimplementedPlatformServer) MutateResource(context.Context, *MutateResourceRequest) (*ResourceReply, error) {
	return nil, status.Error(codes.Unimplemented, "method MutateResource not implemented")
}
func (UnimplementedPlatformServer) CreateOrder(context.Context, *CreateOrderRequest) (*ResourceReply, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateOrder not implemented")
}
func (UnimplementedPlatformServer) ListProducts(context.Context, *ListRequest) (*ListResourcesReply, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}
func (UnimplementedPlatformServer) ListOrders(context.Context, *ListRequest) (*ListResourcesReply, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOrders not implemented")
}
func (UnimplementedPlatformServer) SignUp(context.Context, *SignUpRequest) (*CustomerReply, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}
func (UnimplementedPlatformServer) Login(context.Context, *LoginRequest) (*CustomerReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func RegisterPlatformServer(s grpc.ServiceRegistrar, srv PlatformServer) {
	s.RegisterService(&Platform_ServiceDesc, srv)
}

// unary adapts a typed server method to a grpc.MethodDesc handler.
func unary[Req, Resp any](fullMethod string, call func(PlatformServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PlatformServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PlatformServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Platform_ServiceDesc is the grpc.ServiceDesc for the commerce.v1.Platform service.
var Platform_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlatformServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateResource", Handler: unary(Platform_CreateResource_FullMethodName, PlatformServer.CreateResource)},
		{MethodName: "GetResource", Handler: unary(Platform_GetResource_FullMethodName, PlatformServer.GetResource)},
		{MethodName: "MutateResource", Handler: unary(Platform_MutateResource_FullMethodName, PlatformServer.MutateResource)},
		{MethodName: "CreateOrder", Handler: unary(Platform_CreateOrder_FullMethodName, PlatformServer.CreateOrder)},
		{MethodName: "ListProducts", Handler: unary(Platform_ListProducts_FullMethodName, PlatformServer.ListProducts)},
		{MethodName: "ListOrders", Handler: unary(Platform_ListOrders_FullMethodName, PlatformServer.ListOrders)},
		{MethodName: "SignUp", Handler: unary(Platform_SignUp_FullMethodName, PlatformServer.SignUp)},
		{MethodName: "Login", Handler: unary(Platform_Login_FullMethodName, PlatformServer.Login)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "commerce/v1/platform.json",
}

// PlatformClient is the client API for the commerce.v1.Platform service.
type PlatformClient interface {
	CreateResource(ctx context.Context, in *CreateResourceRequest, opts ...grpc.CallOption) (*ResourceReply, error)
	GetResource(ctx context.Context, in *GetResourceRequest, opts ...grpc.CallOption) (*ResourceReply, error)
	MutateResource(ctx context.Context, in *MutateResourceRequest, opts ...grpc.CallOption) (*ResourceReply, error)
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*ResourceReply, error)
	ListProducts(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResourcesReply, error)
	ListOrders(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResourcesReply, error)
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*CustomerReply, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*CustomerReply, error)
}

type platformClient struct {
	cc grpc.ClientConnInterface
}

func NewPlatformClient(cc grpc.ClientConnInterface) PlatformClient {
	return &platformClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *platformClient) CreateResource(ctx context.Context, in *CreateResourceRequest, opts ...grpc.CallOption) (*ResourceReply, error) {
	return invoke[ResourceReply](ctx, c.cc, Platform_CreateResource_FullMethodName, in, opts)
}

func (c *platformClient) GetResource(ctx context.Context, in *GetResourceRequest, opts ...grpc.CallOption) (*ResourceReply, error) {
	return invoke[ResourceReply](ctx, c.cc, Platform_GetResource_FullMethodName, in, opts)
}

func (c *platformClient) MutateResource(ctx context.Context, in *MutateResourceRequest, opts ...grpc.CallOption) (*ResourceReply, error) {
	return invoke[ResourceReply](ctx, c.cc, Platform_MutateResource_FullMethodName, in, opts)
}

func (c *platformClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*ResourceReply, error) {
	return invoke[ResourceReply](ctx, c.cc, Platform_CreateOrder_FullMethodName, in, opts)
}

func (c *platformClient) ListProducts(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResourcesReply, error) {
	return invoke[ListResourcesReply](ctx, c.cc, Platform_ListProducts_FullMethodName, in, opts)
}

func (c *platformClient) ListOrders(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResourcesReply, error) {
	return invoke[ListResourcesReply](ctx, c.cc, Platform_ListOrders_FullMethodName, in, opts)
}

func (c *platformClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*CustomerReply, error) {
	return invoke[CustomerReply](ctx, c.cc, Platform_SignUp_FullMethodName, in, opts)
}

func (c *platformClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*CustomerReply, error) {
	return invoke[CustomerReply](ctx, c.cc, Platform_Login_FullMethodName, in, opts)
}
