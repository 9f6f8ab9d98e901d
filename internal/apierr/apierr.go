// Package apierr translates domain outcomes into transport status codes. gRPC
// codes are the shared vocabulary; HTTP statuses derive from them.
package apierr

import (
	"context"
	"errors"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, domain.ErrFlightNotFound):
		return codes.NotFound
	case errors.Is(err, domain.ErrDuplicateFlight), errors.Is(err, domain.ErrDuplicateUsername):
		return codes.AlreadyExists
	case errors.Is(err, domain.ErrSeatUnavailable), errors.Is(err, domain.ErrSeatNotBooked):
		return codes.FailedPrecondition
	case errors.Is(err, domain.ErrInvalidCredentials):
		return codes.Unauthenticated
	case errors.Is(err, domain.ErrInvalidFlight), errors.Is(err, domain.ErrInvalidInput):
		return codes.InvalidArgument
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

func HTTPStatus(err error) int {
	return runtime.HTTPStatusFromCode(Code(err))
}

// Status converts err into a gRPC status error. Internal errors hide their text.
func Status(err error) error {
	if err == nil {
		return nil
	}
	code := Code(err)
	if code == codes.Internal {
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}

// Message is the client-facing text for err.
func Message(err error) string {
	if Code(err) == codes.Internal {
		return "internal error"
	}
	return err.Error()
}
