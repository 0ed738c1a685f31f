package product

import (
	"context"
	"sync"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
)

// Repository is the record store adapter for products.
type Repository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
}

// NewRepository creates an in-memory product repository.
func NewRepository() Repository {
	return &repository{
		products: make(map[int64]*domain.Product),
	}
}

func (r *repository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return domain.ErrAlreadyExists
	}

	stored := *product
	r.products[product.ID] = &stored

	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	found := *product

	return &found, nil
}

func (r *repository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return domain.ErrNotFound
	}

	stored := *product
	r.products[product.ID] = &stored

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return domain.ErrNotFound
	}

	delete(r.products, id)

	return nil
}

func (r *repository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		found := *product
		products = append(products, &found)
	}

	return products, nil
}
