package api

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/seatbooking/internal/service/accounts"
	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Accounts accounts.AccountUseCase
	Sessions *SessionStore

	SessionCookie  string
	MetricsHandler http.Handler
	SwaggerDir     string
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger), SessionMiddleware(cfg.Sessions, cfg.SessionCookie))

	NewAccountHandler(cfg.Accounts, cfg.Sessions, cfg.SessionCookie).Register(&engine.RouterGroup)

	flightsGroup := engine.Group("/flights")
	NewFlightHandler(cfg.Flights).Register(flightsGroup, RequireLogin())
	NewBookingHandler(cfg.Bookings).Register(flightsGroup)

	if cfg.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}
	if cfg.SwaggerDir != "" {
		engine.StaticFile("/swagger/doc.json", filepath.Join(cfg.SwaggerDir, "swagger.json"))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	return engine
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
