package user

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

// NewPostgresRepository creates a user repository backed by postgres.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// EnsureSchema creates the users table if it does not exist yet. The
// order_ids column is text on purpose: the store treats the reference list
// as an opaque blob.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL,
			password TEXT NOT NULL,
			email TEXT NOT NULL,
			order_ids TEXT NOT NULL DEFAULT ''
		)
	`)

	return domain.StoreUnavailable(err)
}

func (r *postgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, password, email, order_ids) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.Password, user.Email, user.OrderIDs,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyExists
	}

	return domain.StoreUnavailable(err)
}

func (r *postgresRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password, email, order_ids FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.OrderIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	return &user, nil
}

func (r *postgresRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $2, password = $3, email = $4, order_ids = $5 WHERE id = $1`,
		user.ID, user.Username, user.Password, user.Email, user.OrderIDs,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, password, email, order_ids FROM users ORDER BY id`)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.OrderIDs); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	return users, nil
}
