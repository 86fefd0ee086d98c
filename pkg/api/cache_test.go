package api

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrafficCache(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	trafficCache := NewTrafficCache(client)
	ctx := context.Background()

	_, err := trafficCache.Get(ctx, "bikeflow/traffic/1/bucket/480")
	assert.Error(t, err)

	require.NoError(t, trafficCache.Set(ctx, "bikeflow/traffic/1/bucket/480", `{"time":480}`))

	value, err := trafficCache.Get(ctx, "bikeflow/traffic/1/bucket/480")
	require.NoError(t, err)
	assert.Equal(t, `{"time":480}`, value)

	assert.True(t, server.Exists("bikeflow/traffic/1/bucket/480"))
	assert.Equal(t, trafficCacheExpiration, server.TTL("bikeflow/traffic/1/bucket/480"))
}
