package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portidem "github.com/alanyang/tailor-flow/internal/port/idempotency"
)

var _ portidem.Store = (*Repository)(nil)

// Repository keeps idempotent responses in Postgres so retries are recognised by
// whichever instance receives them.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Check(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT response FROM processed_requests WHERE idempotency_key = $1 AND expires_at > NOW()`

	var result []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&result)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("checking idempotency key: %w", err)
	}
	return result, true, nil
}

func (r *Repository) Store(ctx context.Context, key, route string, response []byte, ttl time.Duration) error {
	query := `
		INSERT INTO processed_requests (idempotency_key, route, response, created_at, expires_at)
		VALUES ($1, $2, $3, NOW(), NOW() + $4::interval)
		ON CONFLICT (idempotency_key) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, key, route, response, ttl); err != nil {
		return fmt.Errorf("storing idempotency key: %w", err)
	}
	return nil
}

// Purge deletes expired keys and returns how many were removed.
func (r *Repository) Purge(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM processed_requests WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("purging idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
