package distributor

import (
	"context"

	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
)

// RosterSource supplies the default roster used when a caller names no workers.
// [DIP] The distributor depends on this, not on where the roster is configured.
type RosterSource interface {
	Roster() []string
}

// StaticRoster is a RosterSource that never changes.
type StaticRoster []string

func (r StaticRoster) Roster() []string { return append([]string(nil), r...) }

// OrderReader resolves order codes for a distribution run.
// [ISP] The distributor only reads single orders; it never writes.
type OrderReader interface {
	GetByCode(ctx context.Context, code string) (domainorder.Order, error)
}
