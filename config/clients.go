package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// NewRedisPool builds a connection pool for cfg and pings redis once.
func NewRedisPool(ctx context.Context, cfg RedisConfig) (*redis.Pool, error) {
	opts := []redis.DialOption{
		redis.DialPassword(cfg.Password),
		redis.DialDatabase(cfg.DB),
		redis.DialConnectTimeout(2 * time.Second),
	}
	if cfg.TLS {
		opts = append(opts, redis.DialUseTLS(true), redis.DialTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}))
	}
	pool := &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.Addr, opts...)
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := pool.GetContext(ctx)
	if err == nil {
		_, err = conn.Do("PING")
		_ = conn.Close()
	}
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return pool, nil
}
