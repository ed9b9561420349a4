package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/redis/go-redis/v9"
)

type ConsumerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	BatchSize int
	Block     time.Duration
	Backoff   time.Duration
}

// ClickConsumer reads click events from a stream as part of a consumer group.
type ClickConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
	log    *logger.Logger
}

func NewClickConsumer(client *redis.Client, cfg ConsumerConfig, log *logger.Logger) *ClickConsumer {
	return &ClickConsumer{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

func (c *ClickConsumer) EnsureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", c.cfg.Group, err)
	}
	return nil
}

func (c *ClickConsumer) StreamLength(ctx context.Context) (int64, error) {
	return c.client.XLen(ctx, c.cfg.Stream).Result()
}

// Run delivers batches to handle until ctx is done. A batch is acknowledged only if handle succeeds;
// malformed messages are acknowledged and dropped. Entries left pending by an earlier run or by a
// failed batch are redelivered before new entries are read.
func (c *ClickConsumer) Run(ctx context.Context, handle func(context.Context, []*ClickEvent) error) error {
	pending := true
	for {
		streams, err := c.client.XReadGroup(ctx, c.readArgs(pending)).Result()

		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, redis.Nil) {
			pending = false
			continue
		}
		if err != nil {
			c.log.Error("Failed to read from stream: %v", err)
			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		delivered, failed := 0, false
		for _, stream := range streams {
			delivered += len(stream.Messages)
			if !c.process(ctx, stream.Messages, handle) {
				failed = true
			}
		}

		switch {
		case failed:
			pending = true
			if !c.wait(ctx) {
				return nil
			}
		case pending && delivered == 0:
			pending = false
		}
	}
}

// readArgs reads this consumer's unacknowledged entries ("0") without blocking, or new entries (">").
func (c *ClickConsumer) readArgs(pending bool) *redis.XReadGroupArgs {
	args := &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.Stream, ">"},
		Count:    int64(c.cfg.BatchSize),
		Block:    c.cfg.Block,
	}
	if pending {
		args.Streams[1] = "0"
		args.Block = -1
	}
	return args
}

func (c *ClickConsumer) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.cfg.Backoff):
		return true
	}
}

// process reports false when the batch was left unacknowledged.
func (c *ClickConsumer) process(ctx context.Context, messages []redis.XMessage, handle func(context.Context, []*ClickEvent) error) bool {
	if len(messages) == 0 {
		return true
	}

	batch := make([]*ClickEvent, 0, len(messages))
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)

		event, err := ParseClickEvent(msg.Values)
		if err != nil {
			c.log.Warn("Dropping malformed message %s: %v", msg.ID, err)
			continue
		}
		batch = append(batch, event)
	}

	if len(batch) > 0 {
		if err := handle(ctx, batch); err != nil {
			c.log.Error("Failed to handle %d events, will retry: %v", len(batch), err)
			return false
		}
	}

	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, ids...).Err(); err != nil {
		c.log.Error("Failed to acknowledge messages: %v", err)
		return false
	}
	c.log.Debug("Processed %d events", len(batch))
	return true
}

// ParseClickEvent is the inverse of the fields written by ClickProducer.
func ParseClickEvent(values map[string]interface{}) (*ClickEvent, error) {
	str := func(key string) string {
		s, _ := values[key].(string)
		return s
	}

	event := &ClickEvent{
		Code:       str("code"),
		IP:         str("ip"),
		UserAgent:  str("user_agent"),
		Referer:    str("referer"),
		Browser:    str("browser"),
		OS:         str("os"),
		DeviceType: str("device_type"),
	}
	if event.Code == "" {
		return nil, errors.New("missing code")
	}

	id, err := strconv.ParseUint(str("link_id"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid link_id: %w", err)
	}
	event.LinkID = uint32(id)

	if ts := str("timestamp"); ts != "" {
		if event.Timestamp, err = strconv.ParseInt(ts, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	return event, nil
}
