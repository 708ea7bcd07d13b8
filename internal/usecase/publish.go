package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

// PublishRequest describes one content-publishing message.
type PublishRequest struct {
	Skill      string
	ID         string
	Channel    string
	GenerateID bool
}

// PublishResult is what was sent and how many subscribers received it.
type PublishResult struct {
	Payload   domain.PublishedPayload `json:"payload"`
	Receivers int64                   `json:"receivers"`
}

type PublishContent struct {
	publisher      ports.PayloadPublisher
	defaultChannel string
	opts           options
}

func NewPublishContent(publisher ports.PayloadPublisher, defaultChannel string, opts ...Option) *PublishContent {
	return &PublishContent{
		publisher:      publisher,
		defaultChannel: defaultChannel,
		opts:           applyOptions(opts),
	}
}

// ValidatePublishRequest checks a request without contacting the publisher.
func ValidatePublishRequest(req PublishRequest) error {
	if strings.TrimSpace(req.Skill) == "" {
		return &domain.OpError{
			Op:   "publish.validate",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("skill name is required"),
		}
	}
	if req.GenerateID {
		return nil
	}
	return domain.ContentPublishingPayload{ID: req.ID}.Validate()
}

func (uc *PublishContent) Execute(ctx context.Context, req PublishRequest) (PublishResult, error) {
	if err := ValidatePublishRequest(req); err != nil {
		return PublishResult{}, err
	}
	skill := strings.TrimSpace(req.Skill)

	id := strings.TrimSpace(req.ID)
	if id == "" {
		generated, err := uc.opts.newID()
		if err != nil {
			return PublishResult{}, &domain.OpError{Op: "publish.id", Kind: domain.KindExecution, Err: err}
		}
		id = generated
	}

	payload := domain.ContentPublishingPayload{ID: id}
	if err := payload.Validate(); err != nil {
		return PublishResult{}, err
	}

	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = uc.defaultChannel
	}

	msg := domain.PublishedPayload{
		ContentPublishingPayload: payload,
		Skill:                    skill,
		Channel:                  channel,
		PublishedAt:              uc.opts.now().UTC(),
	}

	n, err := uc.publisher.Publish(ctx, msg)
	if err != nil {
		uc.opts.log.Error("publish.failed", zap.String("id", id), zap.String("channel", channel), zap.Error(err))
		return PublishResult{}, err
	}

	uc.opts.log.Info("publish.sent",
		zap.String("id", id),
		zap.String("skill", skill),
		zap.String("channel", channel),
		zap.Int64("receivers", n),
	)
	return PublishResult{Payload: msg, Receivers: n}, nil
}
