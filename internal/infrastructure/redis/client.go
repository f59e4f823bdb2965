// Package redis builds the client backing the best-effort daily totals
// counter. Unlike the database, Redis is not required for the service to
// come up: callers probe connectivity separately and fall back to the
// local buffer while it is unreachable.
package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/fberrez/minihabits/internal/config"
)

// NewClient builds a Redis client from configuration. It does not dial;
// connectivity is checked by Ping and continuously by the monitor.
func NewClient(cfg config.RedisConfig) (*goRedis.Client, error) {
	opts, err := goRedis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	opts.DialTimeout = 5 * time.Second

	return goRedis.NewClient(opts), nil
}

// Ping probes the connection with a bounded timeout.
func Ping(ctx context.Context, client *goRedis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Ping(pingCtx).Err()
}
