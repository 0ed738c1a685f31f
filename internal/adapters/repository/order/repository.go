package order

import (
	"context"
	"sync"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
)

// Repository is the record store adapter for orders.
type Repository interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
}

// NewRepository creates an in-memory order repository.
func NewRepository() Repository {
	return &repository{
		orders: make(map[int64]*domain.Order),
	}
}

func (r *repository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return domain.ErrAlreadyExists
	}

	stored := *order
	r.orders[order.ID] = &stored

	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	found := *order

	return &found, nil
}

func (r *repository) Update(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return domain.ErrNotFound
	}

	stored := *order
	r.orders[order.ID] = &stored

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[id]; !exists {
		return domain.ErrNotFound
	}

	delete(r.orders, id)

	return nil
}

func (r *repository) List(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		found := *order
		orders = append(orders, &found)
	}

	return orders, nil
}
