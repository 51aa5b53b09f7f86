package presence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alanyang/tailor-flow/internal/domain/event"
	domainworker "github.com/alanyang/tailor-flow/internal/domain/worker"
	portbus "github.com/alanyang/tailor-flow/internal/port/eventbus"
	portpresence "github.com/alanyang/tailor-flow/internal/port/presence"
)

var ErrNoName = errors.New("worker name is required")

// Service tracks which workers are online from their heartbeats.
// A worker is online while its last heartbeat is within the window.
type Service struct {
	repo   portpresence.Repository
	bus    portbus.EventBus
	window time.Duration
	now    func() time.Time
}

func NewService(repo portpresence.Repository, bus portbus.EventBus, window time.Duration) *Service {
	if window <= 0 {
		window = domainworker.DefaultOnlineWindow
	}
	return &Service{repo: repo, bus: bus, window: window, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Window() time.Duration { return s.window }

// Heartbeat records that name is alive and announces the worker if it was not
// already online.
func (s *Service) Heartbeat(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNoName
	}
	now := s.now().UTC()

	online, err := s.repo.ListSince(ctx, now.Add(-s.window))
	if err != nil {
		return fmt.Errorf("list presence: %w", err)
	}
	if err := s.repo.Touch(ctx, name, now); err != nil {
		return fmt.Errorf("touch presence: %w", err)
	}
	if !containsName(online, name) {
		s.publish(ctx, event.TypeWorkerOnline, name)
	}
	return nil
}

func (s *Service) Leave(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNoName
	}
	if err := s.repo.Remove(ctx, name); err != nil {
		return fmt.Errorf("remove presence: %w", err)
	}
	s.publish(ctx, event.TypeWorkerOffline, name)
	return nil
}

func (s *Service) Online(ctx context.Context) ([]domainworker.Presence, error) {
	ps, err := s.repo.ListSince(ctx, s.now().UTC().Add(-s.window))
	if err != nil {
		return nil, fmt.Errorf("list presence: %w", err)
	}
	return ps, nil
}

// OnlineNames is Online reduced to worker names, in the store's order.
func (s *Service) OnlineNames(ctx context.Context) ([]string, error) {
	ps, err := s.Online(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	return names, nil
}

// Prune drops workers whose heartbeat has gone stale and announces each one.
func (s *Service) Prune(ctx context.Context) ([]string, error) {
	names, err := s.repo.DeleteBefore(ctx, s.now().UTC().Add(-s.window))
	if err != nil {
		return nil, fmt.Errorf("prune presence: %w", err)
	}
	for _, n := range names {
		s.publish(ctx, event.TypeWorkerOffline, n)
	}
	return names, nil
}

func (s *Service) publish(ctx context.Context, t event.Type, name string) {
	if err := s.bus.Publish(ctx, event.New(t, name)); err != nil {
		slog.ErrorContext(ctx, "failed to publish presence event", "type", t, "worker", name, "error", err)
	}
}

func containsName(ps []domainworker.Presence, name string) bool {
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}
