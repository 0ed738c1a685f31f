package user

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/queue"
	userRepo "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/user"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/services/audit"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

func newTestTracer(t *testing.T) tracing.Tracer {
	t.Helper()

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	require.NoError(t, err)

	return tracing.NewTracer("test", exporter)
}

// captureQueue records published messages instead of delivering them.
type captureQueue struct {
	mu       sync.Mutex
	messages []interface{}
}

func (q *captureQueue) Publish(topic string, message interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.messages = append(q.messages, message)

	return nil
}

func (q *captureQueue) Consume(topic string, handler queue.Handler) error { return nil }

func (q *captureQueue) Close() {}

func (q *captureQueue) published() []interface{} {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]interface{}(nil), q.messages...)
}

func newTestService(t *testing.T, orders map[int64]*domain.Order) (Service, *captureQueue) {
	t.Helper()

	q := &captureQueue{}
	getter := &fakeOrderGetter{orders: orders}

	return NewService(userRepo.NewRepository(), getter, newTestTracer(t), q, 0, 0), q
}

func TestService_CreateAndGetHydrated(t *testing.T) {
	svc, q := newTestService(t, map[int64]*domain.Order{
		1: {ID: 1, Title: "book", Description: "hardcover"},
	})
	ctx := context.Background()

	created, err := svc.Create(ctx, userRow(1, "[1, 2]"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	hydrated, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, hydrated.OrderIDs)
	require.Len(t, hydrated.Orders, 2)
	require.NotNil(t, hydrated.Orders[0].Order)
	assert.Equal(t, "book", hydrated.Orders[0].Order.Title)
	require.NotNil(t, hydrated.Orders[1].Failure)
	assert.Equal(t, domain.ReasonNotFound, hydrated.Orders[1].Failure.Reason)

	published := q.published()
	require.Len(t, published, 1)
	message, ok := published[0].(audit.EntityChangedMessage)
	require.True(t, ok)
	assert.Equal(t, "user", message.Entity)
	assert.Equal(t, audit.ActionCreated, message.Action)
	assert.Equal(t, int64(1), message.EntityID)
}

func TestService_CreateRejectsUndecodableReferenceBlob(t *testing.T) {
	svc, q := newTestService(t, nil)

	_, err := svc.Create(context.Background(), userRow(1, "{oops"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Empty(t, q.published())
}

func TestService_CreateValidatesRequiredFields(t *testing.T) {
	svc, _ := newTestService(t, nil)

	for _, user := range []*domain.User{
		{Username: "alice", Password: "secret", Email: "a@example.com"},
		{ID: 1, Password: "secret", Email: "a@example.com"},
		{ID: 1, Username: "alice", Email: "a@example.com"},
		{ID: 1, Username: "alice", Password: "secret"},
	} {
		_, err := svc.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
}

func TestService_CreateDuplicate(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, userRow(1, ""))
	require.NoError(t, err)

	_, err = svc.Create(ctx, userRow(1, ""))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestService_UpdateKeepsStoredReferences(t *testing.T) {
	svc, _ := newTestService(t, map[int64]*domain.Order{
		4: {ID: 4, Title: "kept"},
	})
	ctx := context.Background()

	_, err := svc.Create(ctx, userRow(1, "[4]"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &domain.User{
		ID:       1,
		Username: "renamed",
		Password: "rotated",
		Email:    "renamed@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "[4]", updated.OrderIDs)

	hydrated, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, hydrated.OrderIDs)
}

func TestService_UpdateMissingUser(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Update(context.Background(), userRow(42, ""))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_DeleteThenGet(t *testing.T) {
	svc, q := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, userRow(1, ""))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))

	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	published := q.published()
	require.Len(t, published, 2)
	message, ok := published[1].(audit.EntityChangedMessage)
	require.True(t, ok)
	assert.Equal(t, audit.ActionDeleted, message.Action)
}

func TestService_DeleteMissingUser(t *testing.T) {
	svc, q := newTestService(t, nil)

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, q.published())
}

func TestService_SearchHydratesEveryRow(t *testing.T) {
	svc, _ := newTestService(t, map[int64]*domain.Order{
		1: {ID: 1, Title: "first"},
	})
	ctx := context.Background()

	_, err := svc.Create(ctx, userRow(1, "[1]"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.User{
		ID:       2,
		Username: "bob",
		Password: "secret",
		Email:    "bob@example.com",
		OrderIDs: "[1, 9]",
	})
	require.NoError(t, err)

	users, err := svc.Search(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	byID := map[int64]*domain.HydratedUser{}
	for _, u := range users {
		byID[u.ID] = u
	}

	require.Len(t, byID[int64(1)].Orders, 1)
	assert.NotNil(t, byID[int64(1)].Orders[0].Order)

	require.Len(t, byID[int64(2)].Orders, 2)
	assert.NotNil(t, byID[int64(2)].Orders[0].Order)
	require.NotNil(t, byID[int64(2)].Orders[1].Failure)
	assert.Equal(t, domain.ReasonNotFound, byID[int64(2)].Orders[1].Failure.Reason)
}
