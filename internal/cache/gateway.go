package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/proftafla/exam-service/pkg/util/errorutil"
)

// Gateway stores raw upstream responses keyed by department slug.
type Gateway interface {
	Key(slug string) string
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Flush(ctx context.Context) (bool, error)
	TTL() time.Duration
}

type redisGateway struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
}

// NewRedisGateway builds a Gateway over a shared go-redis client.
func NewRedisGateway(client redis.UniversalClient, namespace string, ttl time.Duration) Gateway {
	return &redisGateway{client: client, namespace: namespace, ttl: ttl}
}

func (g *redisGateway) Key(slug string) string {
	if g.namespace == "" {
		return slug
	}
	return g.namespace + ":" + slug
}

func (g *redisGateway) TTL() time.Duration {
	return g.ttl
}

// Get returns ok=false on a miss; only store failures produce an error.
func (g *redisGateway) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := g.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewCacheError("get", err)
	}
	return val, true, nil
}

func (g *redisGateway) Set(ctx context.Context, key, value string) error {
	if err := g.client.Set(ctx, key, value, g.ttl).Err(); err != nil {
		return apperrors.NewCacheError("set", err)
	}
	return nil
}

// Flush empties the whole store, not only keys under the namespace.
func (g *redisGateway) Flush(ctx context.Context) (bool, error) {
	status, err := g.client.FlushAll(ctx).Result()
	if err != nil {
		return false, apperrors.NewCacheError("flush", err)
	}
	return status == "OK", nil
}
