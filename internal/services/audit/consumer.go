package audit

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/queue"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// NewEntityChangedHandler creates the queue handler that feeds the audit
// service, continuing the trace of the publishing request.
func NewEntityChangedHandler(service Service, tracer tracing.Tracer) queue.Handler {
	return func(message []byte) error {
		var entityChanged EntityChangedMessage
		if err := json.Unmarshal(message, &entityChanged); err != nil {
			return errors.Wrap(err, "unmarshal entity-changed message")
		}

		ctx, span := tracer.StartSpanWithContext(
			context.Background(),
			"internal.services.audit.consumer.EntityChanged",
			entityChanged.SpanContext.SpanContext,
		)
		defer span.End()

		return service.Record(ctx, entityChanged)
	}
}
