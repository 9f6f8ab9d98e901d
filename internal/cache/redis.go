package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps a short-lived copy of the flight listing. The registry stays
// the source of truth; every seat or flight mutation invalidates the entry.
type RedisCache struct {
	client     redis.UniversalClient
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL,
	)
}

func NewRedisCacheWithClient(client redis.UniversalClient, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

// GetFlights returns nil, nil on a cache miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// FlightsVersion returns the listing generation. It moves on every
// InvalidateFlights, and a missing counter reads as zero.
func (c *RedisCache) FlightsVersion(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, flightsVersionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// SetFlights stores the listing only while the generation still equals
// version. It reports false when a mutation invalidated the listing after the
// caller read version, so a listing read before that mutation is never cached.
func (c *RedisCache) SetFlights(ctx context.Context, version int64, flights []domain.Flight) (bool, error) {
	payload, err := json.Marshal(flights)
	if err != nil {
		return false, err
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, flightsVersionKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, flightsKey(), payload, c.flightsTTL)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, flightsVersionKey())
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// InvalidateFlights bumps the generation and drops the listing in one transaction.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, flightsVersionKey())
		pipe.Del(ctx, flightsKey())
		return nil
	})
	return err
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsKey() string {
	return "cache:flights"
}

func flightsVersionKey() string {
	return "cache:flights:version"
}
