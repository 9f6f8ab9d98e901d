package api

import (
	"net/http"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type addFlightRequest struct {
	FlightNumber string `json:"flight_number" binding:"required"`
	Origin       string `json:"origin" binding:"required"`
	Destination  string `json:"destination" binding:"required"`
	SeatCapacity int    `json:"seat_capacity" binding:"required"`
}

type flightResponse struct {
	FlightNumber   string           `json:"flight_number"`
	Origin         string           `json:"origin"`
	Destination    string           `json:"destination"`
	SeatCapacity   int              `json:"seat_capacity"`
	AvailableSeats int              `json:"available_seats"`
	Bookings       []domain.Booking `json:"bookings"`
}

type seatsResponse struct {
	FlightNumber   string   `json:"flight_number"`
	AvailableSeats []string `json:"available_seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register mounts the flight routes. Adding a flight requires a logged-in user.
func (h *FlightHandler) Register(router *gin.RouterGroup, requireLogin gin.HandlerFunc) {
	router.GET("", h.list)
	router.POST("", requireLogin, h.add)
	router.GET("/:number", h.get)
	router.GET("/:number/seats", h.seats)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.ListFlights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]flightResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetFlight(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (h *FlightHandler) add(c *gin.Context) {
	var req addFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.AddFlight(c.Request.Context(), flights.AddFlightInput{
		FlightNumber: req.FlightNumber,
		Origin:       req.Origin,
		Destination:  req.Destination,
		SeatCapacity: req.SeatCapacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(*flight))
}

func (h *FlightHandler) seats(c *gin.Context) {
	number := domain.NormalizeFlightNumber(c.Param("number"))
	seats, err := h.service.ListAvailableSeats(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, seatsResponse{FlightNumber: number, AvailableSeats: seats})
}

func toFlightResponse(f domain.Flight) flightResponse {
	bookings := f.Bookings
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return flightResponse{
		FlightNumber:   f.FlightNumber,
		Origin:         f.Origin,
		Destination:    f.Destination,
		SeatCapacity:   f.SeatCapacity,
		AvailableSeats: f.AvailableSeats,
		Bookings:       bookings,
	}
}
