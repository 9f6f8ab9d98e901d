package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/bootstrap"
	"github.com/Domenick1991/seatbooking/internal/cache"
	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/logger"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
	"github.com/Domenick1991/seatbooking/internal/secrets"
	"github.com/Domenick1991/seatbooking/internal/service/accounts"
	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("seatbooking", pflag.ExitOnError)
	cfgPath := flags.String("config", defaultConfigPath(), "path to the YAML config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		// Run on defaults only when no config location was asked for.
		if !errors.Is(err, os.ErrNotExist) || flags.Changed("config") || os.Getenv("CONFIG_PATH") != "" {
			log.Fatalf("load config: %v", err)
		}
		cfg = config.Default()
	}

	lg := logger.New(cfg.Log.Level)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var (
		flightCache flights.Cache
		invalidator booking.CacheInvalidator
		producer    booking.Producer
	)
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			lg.Warn("redis unavailable, flight cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			// A listing cached by a previous process no longer matches memory.
			if err := redisCache.InvalidateFlights(ctx); err != nil {
				lg.Warn("could not clear cached flight listing", "error", err)
			}
			flightCache, invalidator = redisCache, redisCache
		}
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
		defer kafkaProducer.Close()
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := kafkaProducer.CheckConnection(checkCtx)
		cancel()
		if err != nil {
			lg.Warn("kafka unavailable, seat events disabled", "brokers", cfg.Kafka.Brokers, "error", err)
		} else {
			producer = kafkaProducer
		}
	}

	flightRegistry := repository.NewFlightRegistry()
	flightService := flights.NewFlightService(flightRegistry, flightCache, flights.WithLogger(lg), flights.WithMetrics(m))
	if !cfg.Seed.Disabled {
		flightService.SeedDefaults(ctx, cfg.Seed.Flights)
	}
	bookingService := booking.NewBookingService(
		flightRegistry,
		invalidator,
		producer,
		cfg.Kafka.SeatEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithPublishAttempts(cfg.Kafka.PublishAttempts),
		booking.WithLogger(lg),
		booking.WithMetrics(m),
	)
	accountService := accounts.NewAccountService(
		repository.NewAccountRegistry(),
		secrets.NewHasher(cfg.Auth.BcryptCost),
		accounts.WithLogger(lg),
		accounts.WithMetrics(m),
	)

	services := bootstrap.Services{
		Flights:  flightService,
		Bookings: bookingService,
		Accounts: accountService,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	if err := bootstrap.Run(ctx, cfg, services, lg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
