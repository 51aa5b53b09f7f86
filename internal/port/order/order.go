package order

import (
	"context"

	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
)

// Repository manages order persistence. Orders are keyed by their code.
type Repository interface {
	// Upsert inserts the order or replaces the live order with the same code.
	Upsert(ctx context.Context, o domainorder.Order) (domainorder.Order, error)
	GetByCode(ctx context.Context, code string) (domainorder.Order, error)
	// List returns live orders, newest first.
	List(ctx context.Context, filters domainorder.ListFilters) ([]domainorder.Order, error)
	SoftDelete(ctx context.Context, code string) error
}

// OwnershipChecker reports which tailor, if any, already holds an order code.
// [ISP] The duplicate check depends only on this one method.
type OwnershipChecker interface {
	FindOwner(ctx context.Context, code string) (owner string, found bool, err error)
}
