package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/festy23/task_capacity/internal/capacity"
	"github.com/festy23/task_capacity/internal/config"
	"github.com/festy23/task_capacity/pkg/retry"
)

// Redis is a Store shared by every server instance. Expiry is delegated to Redis key TTLs.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to the configured Redis server, retrying transient failures.
func NewRedis(ctx context.Context, cfg config.SessionConfig, logger *zap.SugaredLogger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	retryCfg := retry.BrokerConfig()
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("redis ping failed, retrying", "attempt", attempt, "delay", delay, "error", err)
	}
	if err := retry.Do(ctx, retryCfg, func() error { return client.Ping(ctx).Err() }); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	logger.Infow("redis connected", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return NewRedisWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(id string) string {
	return r.prefix + id
}

// Save stores the negotiation under its id for ttl.
func (r *Redis) Save(ctx context.Context, n *capacity.Negotiation, ttl time.Duration) error {
	data, err := encode(n)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(n.ID), data, ttl).Err()
}

// Get returns a stored negotiation without consuming it.
func (r *Redis) Get(ctx context.Context, id string) (*capacity.Negotiation, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode(data)
}

// Take atomically removes and returns a stored negotiation.
func (r *Redis) Take(ctx context.Context, id string) (*capacity.Negotiation, error) {
	data, err := r.client.GetDel(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode(data)
}

// Check pings the server.
func (r *Redis) Check(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
