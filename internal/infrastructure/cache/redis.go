package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/events"
	"github.com/MurtazaJ53/allure-web-grace/pkg/config"
	"github.com/go-redis/redis/v8"
)

var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
	ErrCacheConnection = errors.New("cache: connection error")
)

// DashboardEventChannel is the Redis channel for dashboard events.
const DashboardEventChannel = "dashboard:events"

// Config holds the configuration for the Redis client.
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	ConnTimeout  time.Duration
	DefaultTTL   time.Duration
	KeyPrefix    string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
		ConnTimeout:  5 * time.Second,
		DefaultTTL:   30 * time.Minute,
		KeyPrefix:    "allure:",
	}
}

// NewConfigFromEnv creates a Redis config from project configuration.
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	return c
}

// RedisClient wraps the Redis client with JSON caching helpers and
// dashboard event publishing.
type RedisClient struct {
	client *redis.Client
	config *Config
}

// NewRedisClient creates a new Redis client with the provided configuration.
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client, config: cfg}, nil
}

// GetClient exposes the underlying redis client.
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

func (r *RedisClient) key(k string) string {
	return r.config.KeyPrefix + k
}

// GetJSON fetches a key and unmarshals it into dest.
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return json.Unmarshal(data, dest)
}

// SetJSON marshals value and stores it under key with the given TTL.
// A zero TTL uses the configured default.
func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal value: %w", err)
	}
	if ttl == 0 {
		ttl = r.config.DefaultTTL
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

// DeletePattern removes all keys matching the given pattern.
func (r *RedisClient) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, r.key(pattern), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// PublishDashboardEvent publishes an event on the dashboard channel so
// connected consumers can invalidate cached views for the user.
func (r *RedisClient) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal dashboard event: %w", err)
	}
	return r.client.Publish(ctx, DashboardEventChannel, payload).Err()
}

// HealthCheck pings Redis.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if _, err := r.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// Close shuts down the underlying client.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
