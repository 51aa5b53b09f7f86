package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
	portorder "github.com/alanyang/tailor-flow/internal/port/order"
)

var (
	_ portorder.Repository       = (*Repository)(nil)
	_ portorder.OwnershipChecker = (*Repository)(nil)
)

// Repository implements both port/order.Repository and port/order.OwnershipChecker.
// [LSP] Both interfaces are satisfied; consumers depend only on the interface they need.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, code, tailor, model, color, customer, cs, order_date, due_date,
	quantity, sizes, status, priority, description, created_at, updated_at, deleted_at`

// Upsert inserts or replaces the order with the same code. A soft-deleted row with
// that code is revived; its id and created_at are kept.
func (r *Repository) Upsert(ctx context.Context, o domainorder.Order) (domainorder.Order, error) {
	query := `
		INSERT INTO orders (` + columns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NULL)
		ON CONFLICT (code) DO UPDATE SET
			tailor = EXCLUDED.tailor, model = EXCLUDED.model, color = EXCLUDED.color,
			customer = EXCLUDED.customer, cs = EXCLUDED.cs, order_date = EXCLUDED.order_date,
			due_date = EXCLUDED.due_date, quantity = EXCLUDED.quantity, sizes = EXCLUDED.sizes,
			status = EXCLUDED.status, priority = EXCLUDED.priority,
			description = EXCLUDED.description, updated_at = EXCLUDED.updated_at,
			deleted_at = NULL
		RETURNING ` + columns

	sizes := o.Sizes
	if sizes == nil {
		sizes = []domainorder.SizeDetail{}
	}
	row := r.pool.QueryRow(ctx, query,
		o.ID, o.Code, o.Tailor, o.Model, o.Color, o.Customer, o.CS, o.OrderDate, o.DueDate,
		o.Quantity, sizes, o.Status, o.Priority, o.Description, o.CreatedAt, o.UpdatedAt,
	)
	saved, err := scanOrder(row)
	if err != nil {
		return domainorder.Order{}, fmt.Errorf("upserting order: %w", err)
	}
	return saved, nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (domainorder.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM orders WHERE code = $1 AND deleted_at IS NULL`, code)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainorder.Order{}, fmt.Errorf("order %s: %w", code, domainorder.ErrNotFound)
		}
		return domainorder.Order{}, fmt.Errorf("querying order: %w", err)
	}
	return o, nil
}

func (r *Repository) List(ctx context.Context, filters domainorder.ListFilters) ([]domainorder.Order, error) {
	query := `SELECT ` + columns + ` FROM orders WHERE deleted_at IS NULL`

	args := []interface{}{}
	argIdx := 1

	if filters.Code != "" {
		query += fmt.Sprintf(" AND code ILIKE $%d", argIdx)
		args = append(args, "%"+filters.Code+"%")
		argIdx++
	}
	if filters.Tailor != "" {
		query += fmt.Sprintf(" AND tailor ILIKE $%d", argIdx)
		args = append(args, "%"+filters.Tailor+"%")
		argIdx++
	}
	if filters.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filters.Status))
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []domainorder.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *Repository) SoftDelete(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET deleted_at = NOW(), updated_at = NOW() WHERE code = $1 AND deleted_at IS NULL`, code)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", code, domainorder.ErrNotFound)
	}
	return nil
}

// FindOwner returns the tailor holding a live order with this code.
func (r *Repository) FindOwner(ctx context.Context, code string) (string, bool, error) {
	var tailor string
	err := r.pool.QueryRow(ctx,
		`SELECT tailor FROM orders WHERE code = $1 AND deleted_at IS NULL`, code).Scan(&tailor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("querying order owner: %w", err)
	}
	return tailor, true, nil
}

func scanOrder(row pgx.Row) (domainorder.Order, error) {
	var o domainorder.Order
	err := row.Scan(
		&o.ID, &o.Code, &o.Tailor, &o.Model, &o.Color, &o.Customer, &o.CS,
		&o.OrderDate, &o.DueDate, &o.Quantity, &o.Sizes, &o.Status, &o.Priority,
		&o.Description, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	)
	return o, err
}
