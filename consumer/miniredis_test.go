package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// newTestConsumer starts miniredis and returns an enabled consumer bound to it
// plus a client for producing messages and inspecting the stream.
func newTestConsumer(t *testing.T, handler EventHandler) (*Consumer, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.BlockTimeout = 20 * time.Millisecond
	cfg.MaxRetryBackoff = 50 * time.Millisecond

	c, err := NewConsumer(cfg, handler, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.client.Close() })
	require.NoError(t, c.ensureConsumerGroup(context.Background()))

	producer := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = producer.Close() })
	return c, producer
}

func addMessage(t *testing.T, client *redis.Client, stream string, values map[string]any) string {
	t.Helper()
	id, err := client.XAdd(context.Background(), &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}).Result()
	require.NoError(t, err)
	return id
}

func pendingCount(t *testing.T, c *Consumer) int64 {
	t.Helper()
	res, err := c.client.XPending(context.Background(), c.config.StreamKey, c.config.GroupName).Result()
	require.NoError(t, err)
	return res.Count
}
