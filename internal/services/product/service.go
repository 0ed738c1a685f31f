package product

import (
	"context"
	"log"

	"github.com/pkg/errors"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/queue"
	productRepo "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/product"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/services/audit"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// Service is the product backend. Products reference nothing, so this is a
// straight translation onto the record store.
type Service interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo        productRepo.Repository
	tracer      tracing.Tracer
	queueClient queue.Queue
}

func NewService(repo productRepo.Repository, tracer tracing.Tracer, queueClient queue.Queue) Service {
	return &service{
		repo:        repo,
		tracer:      tracer,
		queueClient: queueClient,
	}
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.product.Get")
	defer span.End()

	return s.repo.Get(ctx, id)
}

func (s *service) Search(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.product.Search")
	defer span.End()

	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.product.Create")
	defer span.End()

	if err := validate(product); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publishChange(span, audit.ActionCreated, product.ID)

	return product, nil
}

func (s *service) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.product.Update")
	defer span.End()

	if err := validate(product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publishChange(span, audit.ActionUpdated, product.ID)

	return product, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "internal.services.product.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishChange(span, audit.ActionDeleted, id)

	return nil
}

func validate(product *domain.Product) error {
	if product.ID <= 0 {
		return errors.Wrap(domain.ErrInvalidArgument, "product id is required")
	}
	if product.Title == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "product title is required")
	}
	if product.Description == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "product description is required")
	}

	return nil
}

func (s *service) publishChange(span oteltrace.Span, action string, id int64) {
	err := s.queueClient.Publish(audit.EntityChangedTopic, audit.EntityChangedMessage{
		Entity:      "product",
		Action:      action,
		EntityID:    id,
		SpanContext: tracing.NewSpanContext(span.SpanContext()),
	})
	if err != nil {
		log.Printf("product service: publish change event: %v", err)
	}
}
