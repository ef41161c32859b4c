package sheet

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "poolsheet.sheet.v1.SheetService"

// Method names.
const (
	MethodCreateCharacter = "CreateCharacter"
	MethodGetCharacter    = "GetCharacter"
	MethodAddResource     = "AddResource"
	MethodListResources   = "ListResources"
	MethodUpdateResource  = "UpdateResource"
	MethodDeleteResource  = "DeleteResource"
	MethodAdjustResource  = "AdjustResource"
	MethodRoll            = "Roll"
	MethodGetRoll         = "GetRoll"
	MethodBurn            = "Burn"
	MethodKarma           = "Karma"
	MethodConfirm         = "Confirm"
	MethodReplenishState  = "ReplenishState"
	MethodReplenish       = "Replenish"
	MethodResolveKeyword  = "ResolveKeyword"
	MethodGetLabels       = "GetLabels"
)

// FullMethod returns the gRPC path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// SheetServer is the server API for the sheet service.
type SheetServer interface {
	CreateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddResource(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListResources(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateResource(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteResource(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdjustResource(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Roll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRoll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Burn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Karma(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Confirm(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReplenishState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Replenish(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveKeyword(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLabels(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(SheetServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SheetServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(SheetServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc describes SheetService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SheetServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateCharacter, SheetServer.CreateCharacter),
		unary(MethodGetCharacter, SheetServer.GetCharacter),
		unary(MethodAddResource, SheetServer.AddResource),
		unary(MethodListResources, SheetServer.ListResources),
		unary(MethodUpdateResource, SheetServer.UpdateResource),
		unary(MethodDeleteResource, SheetServer.DeleteResource),
		unary(MethodAdjustResource, SheetServer.AdjustResource),
		unary(MethodRoll, SheetServer.Roll),
		unary(MethodGetRoll, SheetServer.GetRoll),
		unary(MethodBurn, SheetServer.Burn),
		unary(MethodKarma, SheetServer.Karma),
		unary(MethodConfirm, SheetServer.Confirm),
		unary(MethodReplenishState, SheetServer.ReplenishState),
		unary(MethodReplenish, SheetServer.Replenish),
		unary(MethodResolveKeyword, SheetServer.ResolveKeyword),
		unary(MethodGetLabels, SheetServer.GetLabels),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "poolsheet/sheet/v1/sheet.proto",
}

// RegisterSheetServer registers srv on s.
func RegisterSheetServer(s grpc.ServiceRegistrar, srv SheetServer) {
	s.RegisterService(&ServiceDesc, srv)
}
