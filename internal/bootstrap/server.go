package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/seatbooking/api"
	"github.com/Domenick1991/seatbooking/config"
	seatsapi "github.com/Domenick1991/seatbooking/internal/api/seats_service_api"
	"github.com/Domenick1991/seatbooking/internal/service/accounts"
	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Accounts accounts.AccountUseCase
	Metrics  http.Handler
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the gRPC and HTTP servers and blocks until ctx is cancelled or a
// server fails. Both servers are shut down before it returns.
func Run(ctx context.Context, cfg *config.Config, svc Services, logger *slog.Logger) error {
	s := newServers(cfg, svc, logger)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		lis.Close()
		return fmt.Errorf("listen HTTP %s: %w", cfg.HTTP.Address, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("grpc server listening", "address", lis.Addr().String())
		return s.grpcServer.Serve(lis)
	})
	g.Go(func() error {
		logger.Info("http server listening", "address", httpLis.Addr().String())
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newServers(cfg *config.Config, svc Services, logger *slog.Logger) *Servers {
	// Sessions started over HTTP also authorise the gRPC calls that need a login.
	sessions := api.NewSessionStore(time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute)

	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		loggingInterceptor(logger),
		seatsapi.RequireSession(sessions, "AddFlight"),
	))
	seatsapi.RegisterSeatsServiceServer(grpcSrv, seatsapi.NewServer(svc.Flights, svc.Bookings))

	router := api.NewRouter(api.RouterConfig{
		Flights:        svc.Flights,
		Bookings:       svc.Bookings,
		Accounts:       svc.Accounts,
		Sessions:       sessions,
		SessionCookie:  cfg.Auth.SessionCookie,
		MetricsHandler: svc.Metrics,
		SwaggerDir:     cfg.HTTP.SwaggerDir,
		Logger:         logger,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
	}
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "grpc request", "method", info.FullMethod, "duration", time.Since(start), "error", err)
		return resp, err
	}
}
