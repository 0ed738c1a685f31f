package user

import (
	"context"
	"sync"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
)

// Repository is the record store adapter for users. The order_ids reference
// list travels through here as the opaque blob the store keeps; decoding is
// the aggregator's job.
type Repository interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
}

// NewRepository creates an in-memory user repository.
func NewRepository() Repository {
	return &repository{
		users: make(map[int64]*domain.User),
	}
}

func (r *repository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return domain.ErrAlreadyExists
	}

	stored := *user
	r.users[user.ID] = &stored

	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	found := *user

	return &found, nil
}

func (r *repository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return domain.ErrNotFound
	}

	stored := *user
	r.users[user.ID] = &stored

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return domain.ErrNotFound
	}

	delete(r.users, id)

	return nil
}

func (r *repository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		found := *user
		users = append(users, &found)
	}

	return users, nil
}
