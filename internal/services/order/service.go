package order

import (
	"context"
	"log"

	"github.com/pkg/errors"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/queue"
	orderRepo "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/order"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/services/audit"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// Service is the order backend: the remote-procedure contract over the
// order record store.
type Service interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Search(ctx context.Context) ([]*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo        orderRepo.Repository
	tracer      tracing.Tracer
	queueClient queue.Queue
}

func NewService(repo orderRepo.Repository, tracer tracing.Tracer, queueClient queue.Queue) Service {
	return &service{
		repo:        repo,
		tracer:      tracer,
		queueClient: queueClient,
	}
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Get")
	defer span.End()

	return s.repo.Get(ctx, id)
}

func (s *service) Search(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Search")
	defer span.End()

	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Create")
	defer span.End()

	if err := validate(order); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publishChange(span, audit.ActionCreated, order.ID)

	return order, nil
}

func (s *service) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Update")
	defer span.End()

	if err := validate(order); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publishChange(span, audit.ActionUpdated, order.ID)

	return order, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "internal.services.order.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishChange(span, audit.ActionDeleted, id)

	return nil
}

func validate(order *domain.Order) error {
	if order.ID <= 0 {
		return errors.Wrap(domain.ErrInvalidArgument, "order id is required")
	}
	if order.Title == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "order title is required")
	}
	if order.Description == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "order description is required")
	}

	return nil
}

// publishChange emits a best-effort change event. The mutation has already
// committed, so a full topic only costs the audit record.
func (s *service) publishChange(span oteltrace.Span, action string, id int64) {
	err := s.queueClient.Publish(audit.EntityChangedTopic, audit.EntityChangedMessage{
		Entity:      "order",
		Action:      action,
		EntityID:    id,
		SpanContext: tracing.NewSpanContext(span.SpanContext()),
	})
	if err != nil {
		log.Printf("order service: publish change event: %v", err)
	}
}
