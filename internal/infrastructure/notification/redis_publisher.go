package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/backoffice/server/internal/domain/report"
)

// RedisPublisher delivers sales reports over a Redis pub/sub channel.
// Publishing is fire-and-forget: one attempt, no retry.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisPublisher creates a new RedisPublisher
func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Publish JSON-encodes the report and publishes it on the channel
func (p *RedisPublisher) Publish(ctx context.Context, salesReport *report.SalesReport) error {
	payload, err := json.Marshal(salesReport)
	if err != nil {
		return fmt.Errorf("encode sales report: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish sales report: %w", err)
	}

	p.logger.Debug("sales report published",
		zap.String("channel", p.channel),
		zap.Int("bytes", len(payload)),
	)
	return nil
}

var _ report.Publisher = (*RedisPublisher)(nil)
