package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatchSize         = 100
)

// Nil is returned, wrapped, by Get on a cache miss.
const Nil = redis.Nil

// RedisCache stores JSON encoded values. TTLs are in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, ttl int) error
	Get(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
	Incr(ctx context.Context, key string, ttl int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{client: client, otel: ot}
}

func (c *redisCache) scope(ctx context.Context, operation, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+operation)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Clear unlinks every key matching prefix, scanning in batches.
func (c *redisCache) Clear(ctx context.Context, prefix string) (err error) {
	ctx, scope := c.scope(ctx, "Clear", prefix)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var cursor uint64

	for {
		var keys []string

		keys, cursor, err = c.client.Scan(ctx, cursor, prefix, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("scan cache keys %s: %w", prefix, err)
		}

		if len(keys) > 0 {
			if err = c.client.Unlink(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("prefix", prefix).Msg("failed to unlink cache keys")

				return fmt.Errorf("unlink cache keys %s: %w", prefix, err)
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache key")

		return fmt.Errorf("delete cache key %s: %w", key, err)
	}

	return nil
}

// Get decodes the value stored at key into value. *string targets receive the raw payload.
func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("get cache key %s: %w", key, err)
	}

	if target, ok := value.(*string); ok {
		*target = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to decode cached value")

		return fmt.Errorf("decode cache key %s: %w", key, err)
	}

	return nil
}

func (c *redisCache) Save(ctx context.Context, key string, value any, ttl int) (err error) {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode cache key %s: %w", key, err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(ttl)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache key")

		return fmt.Errorf("set cache key %s: %w", key, err)
	}

	return nil
}

// Incr bumps a counter and starts its TTL on first use, in one round trip.
func (c *redisCache) Incr(ctx context.Context, key string, ttl int) (count int64, err error) {
	ctx, scope := c.scope(ctx, "Incr", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var incr *redis.IntCmd

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, time.Duration(ttl)*time.Second)

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("increment cache key %s: %w", key, err)
	}

	return incr.Val(), nil
}

func encode(value any) ([]byte, error) {
	switch typed := value.(type) {
	case string:
		return []byte(typed), nil
	case []byte:
		return typed, nil
	default:
		return json.Marshal(typed) //nolint:wrapcheck
	}
}
