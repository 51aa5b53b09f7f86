package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainchat "github.com/alanyang/tailor-flow/internal/domain/chat"
	"github.com/alanyang/tailor-flow/internal/domain/event"
	portchat "github.com/alanyang/tailor-flow/internal/port/chat"
	portbus "github.com/alanyang/tailor-flow/internal/port/eventbus"
)

var (
	ErrEmptyMessage = errors.New("message needs text or an image")
	ErrNoSender     = errors.New("sender is required")
)

// Service is the workshop group chat.
// [SRP] Stores and announces messages; rendering is the client's job.
type Service struct {
	repo portchat.Repository
	bus  portbus.EventBus
}

func NewService(repo portchat.Repository, bus portbus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) Post(ctx context.Context, sender, text, image string) (domainchat.Message, error) {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return domainchat.Message{}, ErrNoSender
	}
	if strings.TrimSpace(text) == "" && image == "" {
		return domainchat.Message{}, ErrEmptyMessage
	}

	m, err := s.repo.Create(ctx, domainchat.NewMessage(sender, text, image))
	if err != nil {
		return domainchat.Message{}, fmt.Errorf("create message: %w", err)
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeChatMessage, m.ID.String())); err != nil {
		slog.ErrorContext(ctx, "failed to publish ChatMessage event", "message_id", m.ID, "error", err)
	}
	return m, nil
}

// Recent returns the latest messages, oldest first.
func (s *Service) Recent(ctx context.Context) ([]domainchat.Message, error) {
	msgs, err := s.repo.Recent(ctx, domainchat.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	return msgs, nil
}
