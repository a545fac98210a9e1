package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
)

// Service stages audit events into the outbox table. The worker picks them
// up and publishes them to Redis; a failed enqueue never fails the request
// that produced it.
type Service struct {
	outbox repository.OutboxRepository
}

func NewService(outbox repository.OutboxRepository) *Service {
	return &Service{outbox: outbox}
}

type event struct {
	Actor      *model.Identity `json:"actor,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Detail     interface{}     `json:"detail,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Record enqueues one audit event. The event type is "<entityType>.<action>",
// e.g. "patient.created".
func (s *Service) Record(ctx context.Context, actor *model.Identity, action, entityType string, entityID uuid.UUID, detail interface{}) {
	payload, err := json.Marshal(event{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("entity_type", entityType).Msg("failed to marshal audit event")
		return
	}

	if err := s.outbox.Enqueue(ctx, &model.OutboxEvent{
		EventType: entityType + "." + action,
		Payload:   payload,
	}); err != nil {
		log.Error().Err(err).Str("entity_type", entityType).Msg("failed to enqueue audit event")
	}
}
