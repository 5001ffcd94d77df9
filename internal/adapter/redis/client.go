// Package redis publishes activity events to Redis pub/sub so that other
// household devices can refresh their lists without polling.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/household-backend/internal/config"
)

// NewClient connects to Redis and verifies the connection with a PING.
// The returned func closes the client.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, func() error, error) {
	addr := cfg.Addr
	if !strings.Contains(addr, ":") {
		addr = addr + ":6379"
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return client, client.Close, nil
}
