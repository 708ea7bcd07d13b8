package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

func TestPublishContent_Sends(t *testing.T) {
	pub := &fakePublisher{receivers: 2}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	uc := NewPublishContent(pub, "skills:content-publishing", WithClock(func() time.Time { return now }))

	res, err := uc.Execute(context.Background(), PublishRequest{Skill: " content-publishing ", ID: "post-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Receivers != 2 || pub.calls != 1 {
		t.Fatalf("unexpected result: %#v (calls=%d)", res, pub.calls)
	}
	if pub.got.ID != "post-1" || pub.got.Skill != "content-publishing" || pub.got.Channel != "skills:content-publishing" {
		t.Fatalf("unexpected payload: %#v", pub.got)
	}
	if !pub.got.PublishedAt.Equal(now) || pub.got.PublishedAt.Location() != time.UTC {
		t.Fatalf("expected UTC publish time, got %v", pub.got.PublishedAt)
	}
}

func TestPublishContent_GeneratesID(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewPublishContent(pub, "c", WithIDGenerator(func() (string, error) { return "gen-1", nil }))

	res, err := uc.Execute(context.Background(), PublishRequest{Skill: "s", Channel: "custom", GenerateID: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Payload.ID != "gen-1" || res.Payload.Channel != "custom" {
		t.Fatalf("unexpected payload: %#v", res.Payload)
	}
}

func TestPublishContent_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  PublishRequest
	}{
		{name: "empty id", req: PublishRequest{Skill: "s", ID: "  "}},
		{name: "empty skill", req: PublishRequest{ID: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			_, err := NewPublishContent(pub, "c").Execute(context.Background(), tt.req)
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got %v", err)
			}
			if pub.calls != 0 {
				t.Fatalf("publisher must not be called")
			}
		})
	}
}

func TestPublishContent_PropagatesPublisherError(t *testing.T) {
	boom := errors.New("connection refused")
	uc := NewPublishContent(&fakePublisher{err: boom}, "c")
	if _, err := uc.Execute(context.Background(), PublishRequest{Skill: "s", ID: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected publisher error, got %v", err)
	}
}
