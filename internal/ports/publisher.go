package ports

import (
	"context"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

// PayloadPublisher delivers a content-publishing payload to subscribers.
type PayloadPublisher interface {
	Publish(ctx context.Context, msg domain.PublishedPayload) (receivers int64, err error)
}
