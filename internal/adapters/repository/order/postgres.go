package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates an order repository backed by postgres.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// EnsureSchema creates the orders table if it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL
		)
	`)

	return domain.StoreUnavailable(err)
}

func (r *postgresRepository) Create(ctx context.Context, order *domain.Order) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders (id, title, description) VALUES ($1, $2, $3)`,
		order.ID, order.Title, order.Description,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyExists
	}

	return domain.StoreUnavailable(err)
}

func (r *postgresRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.Title, &order.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	return &order, nil
}

func (r *postgresRepository) Update(ctx context.Context, order *domain.Order) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET title = $2, description = $3 WHERE id = $1`,
		order.ID, order.Title, order.Description,
	)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description FROM orders ORDER BY id`)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Title, &order.Description); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	return orders, nil
}
