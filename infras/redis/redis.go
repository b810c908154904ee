package redis

import (
	"agenda/config"
	"context"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout  = 5 * time.Second
	readTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	pingTimeout  = 5 * time.Second
)

// Options maps the primary redis config onto client options.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:         net.JoinHostPort(primary.Host, primary.Port),
		Password:     primary.Password,
		DB:           primary.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// New connects to redis. A failed ping is logged and the client is still
// returned: the cache and rate limiter degrade when redis is unreachable.
func New(cfg *config.Config) *goRedis.Client {
	options := Options(cfg)
	client := goRedis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", options.Addr).Msg("Redis is unreachable, continuing without cache")

		return client
	}

	log.Info().Str("addr", options.Addr).Int("db", options.DB).Msg("Connected to Redis")

	return client
}
