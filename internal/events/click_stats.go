package events

import (
	"context"
	"strconv"
	"strings"

	"github.com/Varun5711/hashlink/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	totalField    = "total"
	browserPrefix = "browser:"
	osPrefix      = "os:"
	devicePrefix  = "device:"
)

// ClickStats keeps one Redis hash of counters per short code.
type ClickStats struct {
	client    *redis.Client
	keyPrefix string
}

func NewClickStats(client *redis.Client) *ClickStats {
	return &ClickStats{
		client:    client,
		keyPrefix: "clicks:stats:",
	}
}

func (s *ClickStats) Record(ctx context.Context, batch []*ClickEvent) error {
	pipe := s.client.Pipeline()
	for _, e := range batch {
		key := s.keyPrefix + e.Code
		for _, field := range counterFields(e) {
			pipe.HIncrBy(ctx, key, field, 1)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *ClickStats) Get(ctx context.Context, code string) (*models.LinkStats, error) {
	raw, err := s.client.HGetAll(ctx, s.keyPrefix+code).Result()
	if err != nil {
		return nil, err
	}
	return buildStats(code, raw), nil
}

func counterFields(e *ClickEvent) []string {
	fields := []string{totalField}
	if e.Browser != "" {
		fields = append(fields, browserPrefix+e.Browser)
	}
	if e.OS != "" {
		fields = append(fields, osPrefix+e.OS)
	}
	if e.DeviceType != "" {
		fields = append(fields, devicePrefix+e.DeviceType)
	}
	return fields
}

func buildStats(code string, raw map[string]string) *models.LinkStats {
	stats := &models.LinkStats{
		Code:     code,
		Browsers: map[string]int64{},
		OS:       map[string]int64{},
		Devices:  map[string]int64{},
	}

	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}

		switch {
		case field == totalField:
			stats.Total = n
		case strings.HasPrefix(field, browserPrefix):
			stats.Browsers[strings.TrimPrefix(field, browserPrefix)] = n
		case strings.HasPrefix(field, osPrefix):
			stats.OS[strings.TrimPrefix(field, osPrefix)] = n
		case strings.HasPrefix(field, devicePrefix):
			stats.Devices[strings.TrimPrefix(field, devicePrefix)] = n
		}
	}

	return stats
}
