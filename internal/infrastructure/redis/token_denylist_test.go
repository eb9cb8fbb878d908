package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	return client
}

func TestTokenDenylist_RevokeAndCheck(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	d := NewTokenDenylist(client)
	jti := uuid.New().String()
	defer client.Del(ctx, revokedKeyPrefix+jti)

	revoked, err := d.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, jti, time.Minute))

	revoked, err = d.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, revokedKeyPrefix+jti).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestTokenDenylist_TTLNoPositivo(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	d := NewTokenDenylist(client)
	jti := uuid.New().String()

	require.NoError(t, d.Revoke(ctx, jti, 0))
	revoked, err := d.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)
}
