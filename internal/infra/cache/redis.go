package cache

import (
	"context"
	"crypto/tls"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sangamhq/sangam/internal/config"
)

func New(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}

	if cfg.Redis.EnableTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// RegisterOpenTelemetryPlugin registers the OpenTelemetry plugin for Redis.
// Call after telemetry.SetupTracing so the global tracer provider is set.
func RegisterOpenTelemetryPlugin(rdb *redis.Client) error {
	return redisotel.InstrumentTracing(rdb)
}

func Close(rdb *redis.Client) error {
	return rdb.Close()
}
