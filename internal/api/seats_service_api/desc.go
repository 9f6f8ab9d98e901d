package seats_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "seatbooking.v1.SeatsService"

// SeatsServiceServer is the RPC surface. Requests and responses use
// google.protobuf.Struct so no generated message types are needed.
type SeatsServiceServer interface {
	ListFlights(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetFlight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAvailableSeats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddFlight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BookSeat(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelSeat(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SeatsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListFlights", Handler: unary("ListFlights", newEmpty, SeatsServiceServer.ListFlights)},
		{MethodName: "GetFlight", Handler: unary("GetFlight", newStruct, SeatsServiceServer.GetFlight)},
		{MethodName: "ListAvailableSeats", Handler: unary("ListAvailableSeats", newStruct, SeatsServiceServer.ListAvailableSeats)},
		{MethodName: "AddFlight", Handler: unary("AddFlight", newStruct, SeatsServiceServer.AddFlight)},
		{MethodName: "BookSeat", Handler: unary("BookSeat", newStruct, SeatsServiceServer.BookSeat)},
		{MethodName: "CancelSeat", Handler: unary("CancelSeat", newStruct, SeatsServiceServer.CancelSeat)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "seatbooking/v1/seats.proto",
}

func RegisterSeatsServiceServer(s grpc.ServiceRegistrar, srv SeatsServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FullMethod returns the wire name of a method, e.g. "/seatbooking.v1.SeatsService/BookSeat".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func newEmpty() *emptypb.Empty   { return &emptypb.Empty{} }
func newStruct() *structpb.Struct { return &structpb.Struct{} }

func unary[Req proto.Message](
	method string,
	newReq func() Req,
	call func(SeatsServiceServer, context.Context, Req) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SeatsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SeatsServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
