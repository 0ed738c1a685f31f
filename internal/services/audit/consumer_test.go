package audit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

func newTestTracer(t *testing.T) tracing.Tracer {
	t.Helper()

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	require.NoError(t, err)

	return tracing.NewTracer("test", exporter)
}

type captureService struct {
	mu       sync.Mutex
	recorded []EntityChangedMessage
}

func (s *captureService) Record(ctx context.Context, msg EntityChangedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorded = append(s.recorded, msg)

	return nil
}

func TestEntityChangedHandler_RecordsMessage(t *testing.T) {
	tracer := newTestTracer(t)
	svc := &captureService{}
	handler := NewEntityChangedHandler(svc, tracer)

	_, span := tracer.Start(context.Background(), "publisher")
	payload, err := json.Marshal(EntityChangedMessage{
		Entity:      "order",
		Action:      ActionCreated,
		EntityID:    7,
		SpanContext: tracing.NewSpanContext(span.SpanContext()),
	})
	span.End()
	require.NoError(t, err)

	require.NoError(t, handler(payload))

	require.Len(t, svc.recorded, 1)
	assert.Equal(t, "order", svc.recorded[0].Entity)
	assert.Equal(t, ActionCreated, svc.recorded[0].Action)
	assert.Equal(t, int64(7), svc.recorded[0].EntityID)
	assert.Equal(t,
		span.SpanContext().TraceID().String(),
		svc.recorded[0].SpanContext.TraceID)
}

func TestEntityChangedHandler_RejectsUnreadableMessage(t *testing.T) {
	handler := NewEntityChangedHandler(&captureService{}, newTestTracer(t))

	err := handler([]byte("{not json"))
	assert.Error(t, err)
}
