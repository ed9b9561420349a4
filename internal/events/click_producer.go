package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 500 * time.Millisecond

// ClickProducer appends click events to a Redis stream capped at roughly maxLen entries.
type ClickProducer struct {
	client     *redis.Client
	streamName string
	maxLen     int64
}

// NewClickProducer returns a producer. maxLen <= 0 leaves the stream uncapped.
func NewClickProducer(client *redis.Client, streamName string, maxLen int64) *ClickProducer {
	return &ClickProducer{
		client:     client,
		streamName: streamName,
		maxLen:     maxLen,
	}
}

func (p *ClickProducer) Publish(ctx context.Context, event *ClickEvent) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.client.XAdd(ctx, p.args(event)).Err(); err != nil {
		return fmt.Errorf("failed to publish click event for %s: %w", event.Code, err)
	}
	return nil
}

func (p *ClickProducer) args(event *ClickEvent) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: p.streamName,
		Values: event.fields(),
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return args
}
