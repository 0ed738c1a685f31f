package product

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

// NewPostgresRepository creates a product repository backed by postgres.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// EnsureSchema creates the products table if it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL
		)
	`)

	return domain.StoreUnavailable(err)
}

func (r *postgresRepository) Create(ctx context.Context, product *domain.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, title, description) VALUES ($1, $2, $3)`,
		product.ID, product.Title, product.Description,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyExists
	}

	return domain.StoreUnavailable(err)
}

func (r *postgresRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description FROM products WHERE id = $1`, id,
	).Scan(&product.ID, &product.Title, &product.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	return &product, nil
}

func (r *postgresRepository) Update(ctx context.Context, product *domain.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET title = $2, description = $3 WHERE id = $1`,
		product.ID, product.Title, product.Description,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description FROM products ORDER BY id`)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Title, &product.Description); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	return products, nil
}
