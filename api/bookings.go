package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookSeatRequest struct {
	PassengerName string `json:"passenger_name"`
	SeatNumber    string `json:"seat_number" binding:"required"`
}

type bookingResponse struct {
	FlightNumber string `json:"flight_number"`
	SeatNumber   string `json:"seat_number"`
	Passenger    string `json:"passenger"`
	BookedAt     string `json:"booked_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts seat routes under the flights group.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/:number/bookings", h.book)
	router.DELETE("/:number/bookings/:seat", h.cancel)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.BookSeat(c.Request.Context(), booking.BookSeatInput{
		FlightNumber:  c.Param("number"),
		PassengerName: req.PassengerName,
		SeatNumber:    req.SeatNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelSeat(c.Request.Context(), c.Param("number"), c.Param("seat"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		FlightNumber: b.FlightNumber,
		SeatNumber:   b.Seat.String(),
		Passenger:    b.Passenger,
		BookedAt:     b.BookedAt.UTC().Format(time.RFC3339),
	}
}
