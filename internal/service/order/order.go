package order

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
	"github.com/alanyang/tailor-flow/internal/domain/event"
	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
	portbus "github.com/alanyang/tailor-flow/internal/port/eventbus"
	portlocker "github.com/alanyang/tailor-flow/internal/port/locker"
	portorder "github.com/alanyang/tailor-flow/internal/port/order"
)

var ErrInvalidOrder = errors.New("invalid order")

// Service manages the order book and the duplicate-code check that gates which
// orders may feed a distribution run.
// [DIP] Depends on ports, never on adapters or transport.
type Service struct {
	repo   portorder.Repository
	owners portorder.OwnershipChecker
	bus    portbus.EventBus
	locker portlocker.AdvisoryLocker
}

func NewService(
	repo portorder.Repository,
	owners portorder.OwnershipChecker,
	bus portbus.EventBus,
	locker portlocker.AdvisoryLocker,
) *Service {
	return &Service{repo: repo, owners: owners, bus: bus, locker: locker}
}

// Duplicate describes an existing holder of an order code.
// Conflict is set when the holder is a different tailor than the one asking.
type Duplicate struct {
	Code     string `json:"code"`
	Exists   bool   `json:"exists"`
	Owner    string `json:"owner,omitempty"`
	Conflict bool   `json:"conflict"`
}

func (s *Service) CheckDuplicate(ctx context.Context, code, tailor string) (Duplicate, error) {
	owner, found, err := s.owners.FindOwner(ctx, code)
	if err != nil {
		return Duplicate{}, fmt.Errorf("check duplicate: %w", err)
	}
	d := Duplicate{Code: code, Exists: found, Owner: owner}
	d.Conflict = found && !strings.EqualFold(strings.TrimSpace(owner), strings.TrimSpace(tailor))
	return d, nil
}

type UpsertResult struct {
	Order     domainorder.Order `json:"order"`
	Duplicate Duplicate         `json:"duplicate"`
}

// Upsert saves an order keyed by its code. A code already held by another tailor is
// reported back and logged, never refused: the operator decides.
func (s *Service) Upsert(ctx context.Context, o domainorder.Order) (UpsertResult, error) {
	o.Code = strings.TrimSpace(o.Code)
	if o.Code == "" {
		return UpsertResult{}, fmt.Errorf("%w: code is required", ErrInvalidOrder)
	}
	if _, _, err := distribution.BuildPool([]distribution.Order{o.DistributionInput()}); err != nil {
		return UpsertResult{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	now := time.Now().UTC()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.Status == "" {
		o.Status = domainorder.StatusInProgress
	}
	if o.Priority == "" {
		o.Priority = domainorder.PriorityMedium
	}
	o.UpdatedAt = now
	o.DeletedAt = nil
	o.RecountQuantity()

	var res UpsertResult
	err := s.locker.WithLock(ctx, lockKey(o.Code), func(ctx context.Context) error {
		dup, err := s.CheckDuplicate(ctx, o.Code, o.Tailor)
		if err != nil {
			return err
		}
		if dup.Conflict {
			slog.WarnContext(ctx, "order code already held by another tailor",
				"order_code", o.Code, "owner", dup.Owner, "tailor", o.Tailor)
		}

		saved, err := s.repo.Upsert(ctx, o)
		if err != nil {
			return fmt.Errorf("upsert order: %w", err)
		}
		res = UpsertResult{Order: saved, Duplicate: dup}
		return nil
	})
	if err != nil {
		return UpsertResult{}, err
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeOrderUpdated, res.Order.Code)); err != nil {
		slog.ErrorContext(ctx, "failed to publish OrderUpdated event", "order_code", res.Order.Code, "error", err)
	}
	return res, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (domainorder.Order, error) {
	o, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return domainorder.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, filters domainorder.ListFilters) ([]domainorder.Order, error) {
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Search matches q against order code, tailor and customer.
func (s *Service) Search(ctx context.Context, q string) ([]domainorder.Order, error) {
	if strings.TrimSpace(q) == "" {
		return []domainorder.Order{}, nil
	}
	all, err := s.repo.List(ctx, domainorder.ListFilters{})
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	out := []domainorder.Order{}
	for _, o := range all {
		if o.Matches(q) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	if err := s.repo.SoftDelete(ctx, code); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := s.bus.Publish(ctx, event.New(event.TypeOrderDeleted, code)); err != nil {
		slog.ErrorContext(ctx, "failed to publish OrderDeleted event", "order_code", code, "error", err)
	}
	return nil
}

func (s *Service) MonthlyReport(ctx context.Context) ([]domainorder.MonthlyStat, error) {
	all, err := s.repo.List(ctx, domainorder.ListFilters{})
	if err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}
	return domainorder.Monthly(all), nil
}

// lockKey maps an order code onto the advisory lock key space.
func lockKey(code string) int64 {
	h := fnv.New64a()
	h.Write([]byte("order:" + code))
	return int64(h.Sum64())
}
