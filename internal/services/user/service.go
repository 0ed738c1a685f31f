package user

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/queue"
	userRepo "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/user"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/services/audit"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// DefaultHydrateTimeout caps one hydration batch. Lookups still outstanding
// at expiry become timeout failure slots.
const DefaultHydrateTimeout = 10 * time.Second

// Service is the user backend. Reads are composite: Get and Search return
// hydrated users, with the stored order references resolved through the
// order backend.
type Service interface {
	Get(ctx context.Context, id int64) (*domain.HydratedUser, error)
	Search(ctx context.Context) ([]*domain.HydratedUser, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo           userRepo.Repository
	aggregator     *Aggregator
	tracer         tracing.Tracer
	queueClient    queue.Queue
	hydrateTimeout time.Duration
}

// NewService wires the user backend. orders is the order backend client the
// aggregator resolves references through; fanOutLimit and hydrateTimeout
// fall back to the package defaults when zero.
func NewService(
	repo userRepo.Repository,
	orders OrderGetter,
	tracer tracing.Tracer,
	queueClient queue.Queue,
	fanOutLimit int,
	hydrateTimeout time.Duration,
) Service {
	if hydrateTimeout <= 0 {
		hydrateTimeout = DefaultHydrateTimeout
	}

	return &service{
		repo:           repo,
		aggregator:     NewAggregator(orders, fanOutLimit),
		tracer:         tracer,
		queueClient:    queueClient,
		hydrateTimeout: hydrateTimeout,
	}
}

func (s *service) Get(ctx context.Context, id int64) (*domain.HydratedUser, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.user.Get")
	defer span.End()

	row, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	hydrated, err := s.hydrate(ctx, []*domain.User{row})
	if err != nil {
		return nil, err
	}

	return hydrated[0], nil
}

func (s *service) Search(ctx context.Context) ([]*domain.HydratedUser, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.user.Search")
	defer span.End()

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.hydrate(ctx, rows)
}

func (s *service) hydrate(ctx context.Context, rows []*domain.User) ([]*domain.HydratedUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.hydrateTimeout)
	defer cancel()

	return s.aggregator.Hydrate(ctx, rows)
}

func (s *service) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.user.Create")
	defer span.End()

	if err := validate(user); err != nil {
		return nil, err
	}

	// Reject a reference blob that would poison every later hydration.
	if _, err := domain.DecodeOrderIDs(user.OrderIDs); err != nil {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "order_ids is not a valid reference list")
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishChange(span, audit.ActionCreated, user.ID)

	return user, nil
}

// Update changes profile fields only; the stored reference list is owned by
// order placement and stays untouched.
func (s *service) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "internal.services.user.Update")
	defer span.End()

	if err := validate(user); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	existing.Username = user.Username
	existing.Password = user.Password
	existing.Email = user.Email

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.publishChange(span, audit.ActionUpdated, user.ID)

	return existing, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "internal.services.user.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishChange(span, audit.ActionDeleted, id)

	return nil
}

func validate(user *domain.User) error {
	if user.ID <= 0 {
		return errors.Wrap(domain.ErrInvalidArgument, "user id is required")
	}
	if user.Username == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "username is required")
	}
	if user.Password == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "password is required")
	}
	if user.Email == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "email is required")
	}

	return nil
}

func (s *service) publishChange(span oteltrace.Span, action string, id int64) {
	err := s.queueClient.Publish(audit.EntityChangedTopic, audit.EntityChangedMessage{
		Entity:      "user",
		Action:      action,
		EntityID:    id,
		SpanContext: tracing.NewSpanContext(span.SpanContext()),
	})
	if err != nil {
		log.Printf("user service: publish change event: %v", err)
	}
}
