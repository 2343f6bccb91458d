package feature

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	id "leadscout/pkg/domain"
)

// Redis key prefix for per-tenant flag hashes.
const flagKeyPrefix = "leadscout:features:"

// RedisStore keeps one hash per tenant: field = capability, value = "true"/"false".
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed flag store. The client lifecycle
// is managed by the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func flagKey(tenantID id.TenantID) string {
	return flagKeyPrefix + tenantID.String()
}

func (s *RedisStore) List(ctx context.Context, tenantID id.TenantID) (Flags, error) {
	fields, err := s.client.HGetAll(ctx, flagKey(tenantID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read feature flags: %w", err)
	}
	out := make(Flags, len(fields))
	for field, value := range fields {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			continue
		}
		out[Capability(field)] = enabled
	}
	return out, nil
}

// Set writes all flags in one pipeline round trip.
func (s *RedisStore) Set(ctx context.Context, tenantID id.TenantID, flags Flags) error {
	if len(flags) == 0 {
		return nil
	}
	key := flagKey(tenantID)
	pipe := s.client.Pipeline()
	for capability, enabled := range flags {
		pipe.HSet(ctx, key, string(capability), strconv.FormatBool(enabled))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write feature flags: %w", err)
	}
	return nil
}

// Health pings the Redis server.
func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
