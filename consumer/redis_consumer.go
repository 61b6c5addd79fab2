package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"content-indexer/metrics"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
)

// Event represents a message read from the stream.
type Event struct {
	// MessageID is the Redis Stream message ID.
	MessageID string
	// EventID is the unique event identifier.
	EventID string
	// EventType is the type of event.
	EventType string
	// Source is the service that produced the event.
	Source string
	// CreatedAt is when the event was created.
	CreatedAt time.Time
	// Payload is the raw webhook body.
	Payload json.RawMessage
	// Metadata contains additional context.
	Metadata map[string]string
}

// EventHandler processes events from the stream. Returning an error wrapped
// with backoff.Permanent acks and drops the message; any other error leaves
// it pending for redelivery.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer consumes events from Redis Streams.
type Consumer struct {
	client  *redis.Client
	config  Config
	handler EventHandler
	logger  *slog.Logger
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewConsumer creates a new Redis Streams consumer.
func NewConsumer(config Config, handler EventHandler, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !config.Enabled {
		return &Consumer{config: config, logger: logger}, nil
	}

	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		client:  redis.NewClient(opts),
		config:  config,
		handler: handler,
		logger:  logger,
	}, nil
}

// Start ensures the consumer group exists and begins consuming in the
// background until ctx is cancelled or Stop is called.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.config.Enabled {
		c.logger.Info("consumer disabled, not starting")
		return nil
	}

	if err := c.ensureConsumerGroup(ctx); err != nil {
		return err
	}

	c.logger.Info("starting consumer",
		"stream", c.config.StreamKey,
		"group", c.config.GroupName,
		"consumer", c.config.ConsumerName,
	)

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.consumeLoop(loopCtx)
	return nil
}

// Stop stops the loop, waits for the in-flight batch and closes the client.
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			c.logger.Warn("failed to close redis client", "error", err)
		}
	}
}

// IsEnabled returns true if the consumer is enabled.
func (c *Consumer) IsEnabled() bool {
	return c.config.Enabled
}

// ensureConsumerGroup creates the consumer group if it doesn't exist.
func (c *Consumer) ensureConsumerGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.StreamKey, c.config.GroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func newRetryBackoff(maxInterval time.Duration) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = maxInterval
	bo.Multiplier = 2
	return bo
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer close(c.done)

	bo := newRetryBackoff(c.config.MaxRetryBackoff)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopping")
			return
		default:
		}

		if err := c.readAndProcess(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.RecordConsumerError("read")
			delay := bo.NextBackOff()
			c.logger.Error("error reading stream, retrying", "error", err, "retry_in", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
			continue
		}
		bo.Reset()
	}
}

// readAndProcess reads one batch and hands each message to the handler.
func (c *Consumer) readAndProcess(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		Streams:  []string{c.config.StreamKey, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.BlockTimeout,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			c.process(ctx, message)
		}
	}
	return nil
}

func (c *Consumer) process(ctx context.Context, message redis.XMessage) {
	event := parseEvent(message)

	if err := c.handler.HandleEvent(ctx, event); err != nil {
		var permanent *backoff.PermanentError
		if !errors.As(err, &permanent) {
			metrics.RecordConsumerError("handle")
			c.logger.Error("failed to process event, leaving pending",
				"message_id", message.ID,
				"event_type", event.EventType,
				"error", err,
			)
			return
		}
		metrics.RecordConsumerError("rejected")
		c.logger.Warn("dropping unprocessable event",
			"message_id", message.ID,
			"event_type", event.EventType,
			"error", permanent.Unwrap(),
		)
	}

	if err := c.client.XAck(ctx, c.config.StreamKey, c.config.GroupName, message.ID).Err(); err != nil {
		metrics.RecordConsumerError("ack")
		c.logger.Error("failed to acknowledge message",
			"message_id", message.ID,
			"error", err,
		)
	}
}

// parseEvent converts a Redis Stream message to an Event.
func parseEvent(message redis.XMessage) Event {
	event := Event{
		MessageID: message.ID,
		Metadata:  make(map[string]string),
	}

	if v, ok := message.Values["event_id"].(string); ok {
		event.EventID = v
	}
	if v, ok := message.Values["event_type"].(string); ok {
		event.EventType = v
	}
	if v, ok := message.Values["source"].(string); ok {
		event.Source = v
	}
	if v, ok := message.Values["created_at"].(string); ok {
		event.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	if v, ok := message.Values["payload"].(string); ok {
		event.Payload = json.RawMessage(v)
	}
	if v, ok := message.Values["metadata"].(string); ok {
		_ = json.Unmarshal([]byte(v), &event.Metadata)
	}

	return event
}
