package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"sjsage522/meetupworker/internal/scraper"
	"sjsage522/meetupworker/logger"
)

// RedisSink publishes each collected event to a Redis stream, trimming the
// stream to a maximum length so consumers that fall behind do not grow it
// without bound.
type RedisSink struct {
	client    *redis.Client
	ctx       context.Context
	stream    string
	maxLength int64
	log       *logger.Logger
}

// NewRedisSink creates a Redis stream sink
func NewRedisSink(ctx context.Context, addr string, db int, stream string, maxLength int64) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisSink{
		client:    client,
		ctx:       ctx,
		stream:    stream,
		maxLength: maxLength,
		log:       logger.ForSink(),
	}
}

// Write publishes one stream entry per event. dest is ignored; the stream
// name is fixed at construction.
func (s *RedisSink) Write(_ string, events []scraper.Event) error {
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.Id, err)
		}

		err = s.client.XAdd(s.ctx, &redis.XAddArgs{
			Stream: s.stream,
			MaxLen: s.maxLength,
			Approx: true,
			Values: map[string]interface{}{
				"event": string(data),
			},
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.Id, err)
		}
	}

	s.log.Info().Int("events", len(events)).Str("stream", s.stream).Msg("Published events")
	return nil
}

// Close closes the Redis connection
func (s *RedisSink) Close() error {
	return s.client.Close()
}
