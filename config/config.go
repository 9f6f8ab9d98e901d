package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/Domenick1991/seatbooking/internal/repository"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	GRPC    GRPCConfig    `yaml:"grpc"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Booking BookingConfig `yaml:"booking"`
	Auth    AuthConfig    `yaml:"auth"`
	Seed    SeedConfig    `yaml:"seed"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

// RedisConfig is optional; an empty Addr disables the flight list cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig is optional; no brokers disables seat events.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	SeatEventsTopic    string   `yaml:"seat_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
	PublishAttempts    int      `yaml:"publish_attempts"`
}

type BookingConfig struct {
	FlightsCacheTTL int `yaml:"flights_cache_ttl_seconds"`
}

type AuthConfig struct {
	BcryptCost        int    `yaml:"bcrypt_cost"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
	SessionCookie     string `yaml:"session_cookie"`
}

type SeedConfig struct {
	Disabled bool                    `yaml:"disabled"`
	Flights  []repository.SeedFlight `yaml:"flights"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Default returns the configuration used when every field is left unset.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Kafka.SeatEventsTopic == "" {
		c.Kafka.SeatEventsTopic = "seat-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "seatbooking-worker"
	}
	if c.Kafka.PublishAttempts <= 0 {
		c.Kafka.PublishAttempts = 3
	}
	if c.Booking.FlightsCacheTTL <= 0 {
		c.Booking.FlightsCacheTTL = 30
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Auth.SessionTTLMinutes <= 0 {
		c.Auth.SessionTTLMinutes = 60 * 24
	}
	if c.Auth.SessionCookie == "" {
		c.Auth.SessionCookie = "session_id"
	}
	if len(c.Seed.Flights) == 0 {
		c.Seed.Flights = slices.Clone(repository.DefaultFlights)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
