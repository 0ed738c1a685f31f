package audit

import (
	"context"
	"log"

	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// EntityChangedTopic carries one message per committed mutation on any of
// the three backends.
const EntityChangedTopic = "entity-changed"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityChangedMessage describes one committed mutation. The span context
// links the audit record back to the request that caused it.
type EntityChangedMessage struct {
	Entity      string              `json:"entity"`
	Action      string              `json:"action"`
	EntityID    int64               `json:"entityId"`
	SpanContext tracing.SpanContext `json:"spanContext"`
}

// Service records entity mutations.
type Service interface {
	Record(ctx context.Context, msg EntityChangedMessage) error
}

type service struct {
	tracer tracing.Tracer
}

func NewService(tracer tracing.Tracer) Service {
	return &service{tracer: tracer}
}

func (s *service) Record(ctx context.Context, msg EntityChangedMessage) error {
	_, span := s.tracer.Start(ctx, "internal.services.audit.Record")
	defer span.End()

	log.Printf("audit: %s %s id=%d", msg.Entity, msg.Action, msg.EntityID)

	return nil
}
