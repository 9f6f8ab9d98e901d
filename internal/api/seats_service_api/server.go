package seats_service_api

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/seatbooking/internal/apierr"
	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements SeatsServiceServer on top of the flight and booking use cases.
type Server struct {
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
}

func NewServer(flights flights.FlightUseCase, bookings booking.BookingUseCase) *Server {
	return &Server{flights: flights, bookings: bookings}
}

func (s *Server) ListFlights(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	list, err := s.flights.ListFlights(ctx)
	if err != nil {
		return nil, apierr.Status(err)
	}
	items := make([]any, 0, len(list))
	for _, f := range list {
		items = append(items, flightFields(f))
	}
	return newResponse(map[string]any{"flights": items})
}

func (s *Server) GetFlight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	number, err := requiredString(req, "flight_number")
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.GetFlight(ctx, number)
	if err != nil {
		return nil, apierr.Status(err)
	}
	return newResponse(flightFields(*flight))
}

func (s *Server) ListAvailableSeats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	number, err := requiredString(req, "flight_number")
	if err != nil {
		return nil, err
	}
	seats, err := s.flights.ListAvailableSeats(ctx, number)
	if err != nil {
		return nil, apierr.Status(err)
	}
	labels := make([]any, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat)
	}
	return newResponse(map[string]any{
		"flight_number":   domain.NormalizeFlightNumber(number),
		"available_seats": labels,
	})
}

func (s *Server) AddFlight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	number, err := requiredString(req, "flight_number")
	if err != nil {
		return nil, err
	}
	capacity, err := requiredInt(req, "seat_capacity")
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.AddFlight(ctx, flights.AddFlightInput{
		FlightNumber: number,
		Origin:       req.GetFields()["origin"].GetStringValue(),
		Destination:  req.GetFields()["destination"].GetStringValue(),
		SeatCapacity: capacity,
	})
	if err != nil {
		return nil, apierr.Status(err)
	}
	return newResponse(flightFields(*flight))
}

func (s *Server) BookSeat(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	number, err := requiredString(req, "flight_number")
	if err != nil {
		return nil, err
	}
	seat, err := requiredString(req, "seat_number")
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.BookSeat(ctx, booking.BookSeatInput{
		FlightNumber:  number,
		PassengerName: req.GetFields()["passenger_name"].GetStringValue(),
		SeatNumber:    seat,
	})
	if err != nil {
		return nil, apierr.Status(err)
	}
	return newResponse(bookingFields(*b))
}

func (s *Server) CancelSeat(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	number, err := requiredString(req, "flight_number")
	if err != nil {
		return nil, err
	}
	seat, err := requiredString(req, "seat_number")
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.CancelSeat(ctx, number, seat)
	if err != nil {
		return nil, apierr.Status(err)
	}
	return newResponse(bookingFields(*b))
}

func requiredString(req *structpb.Struct, field string) (string, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NumberValue:
		// Seat numbers are commonly sent as JSON numbers.
		return fmt.Sprintf("%g", kind.NumberValue), nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", field)
	}
}

// requiredInt accepts a whole JSON number or a decimal string within int32 range.
func requiredInt(req *structpb.Struct, field string) (int, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, status.Errorf(codes.InvalidArgument, "%s must be a whole number, got %g", field, n)
		}
		return int(n), nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(kind.StringValue), 10, 32)
		if err != nil {
			return 0, status.Errorf(codes.InvalidArgument, "%s must be a whole number, got %q", field, kind.StringValue)
		}
		return int(n), nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", field)
	}
}

func newResponse(fields map[string]any) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return resp, nil
}

func flightFields(f domain.Flight) map[string]any {
	bookings := make([]any, 0, len(f.Bookings))
	for _, b := range f.Bookings {
		bookings = append(bookings, bookingFields(b))
	}
	return map[string]any{
		"flight_number":   f.FlightNumber,
		"origin":          f.Origin,
		"destination":     f.Destination,
		"seat_capacity":   f.SeatCapacity,
		"available_seats": f.AvailableSeats,
		"bookings":        bookings,
	}
}

func bookingFields(b domain.Booking) map[string]any {
	return map[string]any{
		"flight_number": b.FlightNumber,
		"seat_number":   b.Seat.String(),
		"passenger":     b.Passenger,
		"booked_at":     b.BookedAt.UTC().Format(time.RFC3339),
	}
}

var _ SeatsServiceServer = (*Server)(nil)
