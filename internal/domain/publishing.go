package domain

import (
	"errors"
	"strings"
	"time"
)

// ContentPublishingPayload is the payload handed to the content-publishing
// skill. Only the identifier is defined; downstream skills extend it.
type ContentPublishingPayload struct {
	ID string `json:"id"`
}

// Validate checks the payload carries an identifier.
func (p ContentPublishingPayload) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return &OpError{
			Op:   "publishing.validate",
			Kind: KindInvalidConfig,
			Err:  errors.New("payload id is required"),
		}
	}
	return nil
}

// PublishedPayload is the message actually sent on the wire.
type PublishedPayload struct {
	ContentPublishingPayload

	Skill       string    `json:"skill"`
	Channel     string    `json:"channel"`
	PublishedAt time.Time `json:"published_at"`
}
