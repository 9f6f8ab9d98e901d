package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodeAndHTTPStatus(t *testing.T) {
	testCases := []struct {
		err        error
		code       codes.Code
		httpStatus int
	}{
		{err: fmt.Errorf("%w: AI101", domain.ErrFlightNotFound), code: codes.NotFound, httpStatus: http.StatusNotFound},
		{err: domain.ErrDuplicateFlight, code: codes.AlreadyExists, httpStatus: http.StatusConflict},
		{err: domain.ErrDuplicateUsername, code: codes.AlreadyExists, httpStatus: http.StatusConflict},
		{err: fmt.Errorf("%w: seat 3 already booked", domain.ErrSeatUnavailable), code: codes.FailedPrecondition, httpStatus: http.StatusBadRequest},
		{err: domain.ErrSeatNotBooked, code: codes.FailedPrecondition, httpStatus: http.StatusBadRequest},
		{err: domain.ErrInvalidCredentials, code: codes.Unauthenticated, httpStatus: http.StatusUnauthorized},
		{err: domain.ErrInvalidFlight, code: codes.InvalidArgument, httpStatus: http.StatusBadRequest},
		{err: errors.New("boom"), code: codes.Internal, httpStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.code, Code(tc.err))
			assert.Equal(t, tc.httpStatus, HTTPStatus(tc.err))
		})
	}
	assert.Equal(t, codes.OK, Code(nil))
}

func TestStatus(t *testing.T) {
	assert.Nil(t, Status(nil))

	st, ok := status.FromError(Status(fmt.Errorf("%w: AI101", domain.ErrFlightNotFound)))
	assert.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "flight not found: AI101", st.Message())

	st, _ = status.FromError(Status(errors.New("db password leaked")))
	assert.Equal(t, "internal error", st.Message())
	assert.Equal(t, "internal error", Message(errors.New("secret")))
}
