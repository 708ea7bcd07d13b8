// Package redispublisher publishes content-publishing payloads on a Redis
// pub/sub channel.
package redispublisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

// ErrEmptyAddress is returned when the Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

const connectionTimeout = 2 * time.Second

type Config struct {
	Address  string
	Password string
	DB       int
}

// NewClient creates a Redis client and verifies it answers PING.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

type Publisher struct {
	client *redis.Client
}

func New(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

var _ ports.PayloadPublisher = (*Publisher)(nil)

// Publish sends msg as JSON on msg.Channel and returns how many subscribers
// received it.
func (p *Publisher) Publish(ctx context.Context, msg domain.PublishedPayload) (int64, error) {
	if msg.Channel == "" {
		return 0, &domain.OpError{
			Op:   "redispublisher.publish",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("channel is required"),
		}
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "redispublisher.marshal",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	n, err := p.client.Publish(ctx, msg.Channel, b).Result()
	if err != nil {
		return 0, &domain.OpError{
			Op:   "redispublisher.publish",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("channel %s: %w", msg.Channel, err),
		}
	}
	return n, nil
}
