package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Coaching-Management-Backend/src/logger"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the shared client. An empty address leaves RedisClient nil
// and the caller carries on without sessions or background jobs.
func InitRedis(ctx context.Context, addr, password string, db int) error {
	if addr == "" {
		logger.Warn().Msg("REDIS_URI not set, running without Redis")
		return nil
	}

	opts, err := redisOptions(addr, password, db)
	if err != nil {
		return err
	}

	c := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to connect redis: %w", err)
	}

	RedisClient = c
	logger.Info().Str("addr", opts.Addr).Msg("Redis connected successfully")
	return nil
}

// CloseRedis is safe to call when Redis was never connected.
func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}

// redisOptions accepts either host:port or a redis:// URL.
func redisOptions(addr, password string, db int) (*redis.Options, error) {
	if hasScheme(addr) {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URI: %w", err)
		}
		if password != "" {
			opts.Password = password
		}
		return opts, nil
	}
	return &redis.Options{Addr: addr, Password: password, DB: db}, nil
}

func hasScheme(addr string) bool {
	return strings.Contains(addr, "://")
}
