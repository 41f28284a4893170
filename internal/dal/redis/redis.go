package redisclient

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Client wraps the Redis connection used for read-side caching.
type Client struct {
	rdb *redis.Client
}

// RDB returns the underlying Redis client.
func (c *Client) RDB() *redis.Client {
	return c.rdb
}

// Close closes the connection for graceful shutdown.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// MustNewClient creates a new Redis client from configuration.
func MustNewClient() *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("cache.addr"),
		Password: viper.GetString("cache.password"),
		DB:       viper.GetInt("cache.db"),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic("failed to connect to redis: " + err.Error())
	}

	slog.Info("Redis connected", "addr", viper.GetString("cache.addr"))

	return &Client{rdb: rdb}
}
