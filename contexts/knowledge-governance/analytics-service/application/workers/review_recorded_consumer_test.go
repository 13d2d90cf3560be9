package workers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"knowledgenet/contexts/knowledge-governance/analytics-service/adapters/memory"
	"knowledgenet/internal/shared/events"
)

func reviewEvent(t *testing.T, eventID, reviewerID string) events.Envelope {
	t.Helper()
	payload, err := json.Marshal(map[string]string{
		"reviewer_id": reviewerID,
		"decision":    "approve",
	})
	if err != nil {
		t.Fatalf("payload marshal failed: %v", err)
	}
	return events.Envelope{
		EventID:       eventID,
		EventType:     "artefact.review.recorded",
		SourceService: "knowledge-governance/artefact-service",
		OccurredAtUTC: time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC),
		EntityType:    "artefact",
		EntityID:      "artefact_001",
		SchemaVersion: 1,
		Data:          payload,
	}
}

func TestConsumerIncrementsReviewerProjection(t *testing.T) {
	store := memory.NewStore()
	consumer := ReviewRecordedConsumer{Activity: store}

	if err := consumer.Handle(context.Background(), reviewEvent(t, "evt_1", "user_mei")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if err := consumer.Handle(context.Background(), reviewEvent(t, "evt_2", "user_mei")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	count, err := store.GovernanceActionCount(context.Background(), "user_mei")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("governance actions = %d, want 2", count)
	}
}

func TestConsumerDropsRedeliveredEvent(t *testing.T) {
	store := memory.NewStore()
	consumer := ReviewRecordedConsumer{Activity: store}

	event := reviewEvent(t, "evt_1", "user_mei")
	if err := consumer.Handle(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if err := consumer.Handle(context.Background(), event); err != nil {
		t.Fatalf("redelivery must not fail: %v", err)
	}

	count, err := store.GovernanceActionCount(context.Background(), "user_mei")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("governance actions = %d, want 1 after redelivery", count)
	}
}

func TestConsumerRejectsPayloadWithoutReviewer(t *testing.T) {
	store := memory.NewStore()
	consumer := ReviewRecordedConsumer{Activity: store}

	event := reviewEvent(t, "evt_1", "")
	if err := consumer.Handle(context.Background(), event); err == nil {
		t.Fatal("expected error for payload without reviewer id")
	}
}
