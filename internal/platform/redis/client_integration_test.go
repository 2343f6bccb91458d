//go:build integration

package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout/internal/platform/config"
	"leadscout/pkg/testutil/containers"
)

func TestOpen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.NewRedisContainer(t)

	client, err := Open(context.Background(), config.Redis{URL: rc.URL, PoolSize: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.Equal(t, 2, client.Options().PoolSize)
	require.NoError(t, client.Ping(context.Background()).Err())
}

func TestOpen_NotConfigured(t *testing.T) {
	client, err := Open(context.Background(), config.Redis{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestOpen_BadURL(t *testing.T) {
	_, err := Open(context.Background(), config.Redis{URL: "http://not-redis"})
	require.Error(t, err)
}
