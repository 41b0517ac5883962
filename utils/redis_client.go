package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cppla/classboard/config"
)

// NewRedisClient connects to Redis when a host is configured. It returns nil
// when Redis is disabled or unreachable so callers fall back to in-process state.
func NewRedisClient(cfg config.AppConfig) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}
	rc := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		Sugar.Warnw("redis unavailable, continuing without it", "addr", rc.Options().Addr, "err", err)
		_ = rc.Close()
		return nil
	}
	Sugar.Infow("redis connected", "addr", rc.Options().Addr)
	return rc
}
