package distributor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainchat "github.com/alanyang/tailor-flow/internal/domain/chat"
	"github.com/alanyang/tailor-flow/internal/domain/distribution"
	"github.com/alanyang/tailor-flow/internal/domain/event"
	"github.com/alanyang/tailor-flow/internal/metrics"
	portdist "github.com/alanyang/tailor-flow/internal/port/distributor"
	portbus "github.com/alanyang/tailor-flow/internal/port/eventbus"
	portnotifier "github.com/alanyang/tailor-flow/internal/port/notifier"
)

var (
	ErrEmptyRequest   = errors.New("distribution needs at least one order")
	ErrDuplicateOrder = errors.New("order listed more than once")
)

// ChatPoster posts the text export into the workshop chat.
// [ISP] Only Post is needed; history reads stay with the chat service.
type ChatPoster interface {
	Post(ctx context.Context, sender, text, image string) (domainchat.Message, error)
}

// Request names the orders to split and, optionally, who splits them.
// Stored orders are resolved by code first, inline orders follow in the given order.
type Request struct {
	OrderCodes []string             `json:"order_codes"`
	Orders     []distribution.Order `json:"orders"`
	Roster     []string             `json:"roster"`
	ShareAs    string               `json:"share_as,omitempty"`
}

type Result struct {
	Report  distribution.Report  `json:"report"`
	Orders  []distribution.Order `json:"orders"`
	Message string               `json:"message"`
	Shared  *domainchat.Message  `json:"shared,omitempty"`
}

// AllocationNotice is what a worker receives about their own share of a run.
type AllocationNotice struct {
	Type       event.Type              `json:"type"`
	Key        string                  `json:"key"`
	Allocation distribution.Allocation `json:"allocation"`
}

// Service runs the fair-share engine over stored and inline orders.
// [SRP] Resolves inputs and reports outcomes; the split itself is distribution.Allocate.
type Service struct {
	orders   portdist.OrderReader
	roster   portdist.RosterSource
	bus      portbus.EventBus
	chat     ChatPoster
	notifier portnotifier.WorkerNotifier
}

// NewService wires the distributor. chat may be nil, in which case ShareAs is ignored.
func NewService(orders portdist.OrderReader, roster portdist.RosterSource, bus portbus.EventBus, chat ChatPoster) *Service {
	return &Service{orders: orders, roster: roster, bus: bus, chat: chat}
}

// WithNotifier sends every worker with items their own allocation after a run.
// Call before the service is shared.
func (s *Service) WithNotifier(n portnotifier.WorkerNotifier) *Service {
	s.notifier = n
	return s
}

func (s *Service) Distribute(ctx context.Context, req Request) (Result, error) {
	orders, err := s.resolve(ctx, req)
	if err != nil {
		return Result{}, err
	}

	roster := req.Roster
	if len(roster) == 0 {
		roster = s.roster.Roster()
	}

	report, err := distribution.Allocate(orders, roster)
	if err != nil {
		metrics.DistributionRuns.WithLabelValues(resultLabel(err)).Inc()
		return Result{}, fmt.Errorf("allocate: %w", err)
	}
	s.record(ctx, report)

	res := Result{Report: report, Orders: orders, Message: FormatMessage(orders, report)}

	key := orderKey(orders)
	if err := s.bus.Publish(ctx, event.New(event.TypeDistributionComputed, key)); err != nil {
		slog.ErrorContext(ctx, "failed to publish DistributionComputed event", "order_code", key, "error", err)
	}
	s.notifyWorkers(ctx, key, report)

	if sender := strings.TrimSpace(req.ShareAs); sender != "" && s.chat != nil {
		m, err := s.chat.Post(ctx, sender, res.Message, "")
		if err != nil {
			return Result{}, fmt.Errorf("share distribution: %w", err)
		}
		res.Shared = &m
	}
	return res, nil
}

func (s *Service) resolve(ctx context.Context, req Request) ([]distribution.Order, error) {
	if len(req.OrderCodes) == 0 && len(req.Orders) == 0 {
		return nil, ErrEmptyRequest
	}

	seen := make(map[string]struct{}, len(req.OrderCodes)+len(req.Orders))
	add := func(out []distribution.Order, o distribution.Order) ([]distribution.Order, error) {
		k := strings.ToUpper(strings.TrimSpace(o.Code))
		if k != "" {
			if _, dup := seen[k]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateOrder, o.Code)
			}
			seen[k] = struct{}{}
		}
		return append(out, o), nil
	}

	out := make([]distribution.Order, 0, len(req.OrderCodes)+len(req.Orders))
	for _, code := range req.OrderCodes {
		o, err := s.orders.GetByCode(ctx, strings.TrimSpace(code))
		if err != nil {
			return nil, fmt.Errorf("resolve order %q: %w", code, err)
		}
		if out, err = add(out, o.DistributionInput()); err != nil {
			return nil, err
		}
	}
	for _, o := range req.Orders {
		var err error
		if out, err = add(out, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Service) record(ctx context.Context, r distribution.Report) {
	metrics.DistributionRuns.WithLabelValues(metrics.ResultOK).Inc()
	metrics.SplitPiles.Add(float64(r.Splits))
	metrics.DistributedUnits.Observe(float64(r.Total))
	for _, w := range r.Shortfalls() {
		metrics.ShortfallWarnings.Inc()
		slog.WarnContext(ctx, "worker under-assigned",
			"worker", w.Worker, "target", w.Target, "assigned", w.Assigned)
	}
}

func (s *Service) notifyWorkers(ctx context.Context, key string, r distribution.Report) {
	if s.notifier == nil {
		return
	}
	for _, a := range r.WithItems() {
		notice := AllocationNotice{Type: event.TypeDistributionComputed, Key: key, Allocation: a}
		if err := s.notifier.NotifyWorker(ctx, a.Worker, notice); err != nil {
			slog.ErrorContext(ctx, "failed to notify worker of allocation", "worker", a.Worker, "order_code", key, "error", err)
		}
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, distribution.ErrInvalidRoster):
		return metrics.ResultInvalidRoster
	case errors.Is(err, distribution.ErrMalformedOrder):
		return metrics.ResultMalformedOrder
	default:
		return metrics.ResultError
	}
}

func orderKey(orders []distribution.Order) string {
	codes := make([]string, 0, len(orders))
	for _, o := range orders {
		codes = append(codes, o.Code)
	}
	return strings.Join(codes, ",")
}
