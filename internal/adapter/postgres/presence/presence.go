package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	domainworker "github.com/alanyang/tailor-flow/internal/domain/worker"
	portpresence "github.com/alanyang/tailor-flow/internal/port/presence"
)

var _ portpresence.Repository = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Touch(ctx context.Context, name string, seenAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO worker_presence (name, last_seen) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET last_seen = GREATEST(worker_presence.last_seen, EXCLUDED.last_seen)`,
		name, seenAt)
	if err != nil {
		return fmt.Errorf("touching presence for %s: %w", name, err)
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, name string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM worker_presence WHERE name = $1`, name); err != nil {
		return fmt.Errorf("removing presence for %s: %w", name, err)
	}
	return nil
}

func (r *Repository) ListSince(ctx context.Context, since time.Time) ([]domainworker.Presence, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, last_seen FROM worker_presence WHERE last_seen >= $1 ORDER BY name`, since)
	if err != nil {
		return nil, fmt.Errorf("listing presence: %w", err)
	}
	defer rows.Close()

	out := []domainworker.Presence{}
	for rows.Next() {
		var p domainworker.Presence
		if err := rows.Scan(&p.Name, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("scanning presence: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`DELETE FROM worker_presence WHERE last_seen < $1 RETURNING name`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("pruning presence: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning pruned name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
