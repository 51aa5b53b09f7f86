package chat

import (
	"context"

	domainchat "github.com/alanyang/tailor-flow/internal/domain/chat"
)

type Repository interface {
	Create(ctx context.Context, msg domainchat.Message) (domainchat.Message, error)
	// Recent returns up to limit of the latest messages, oldest first.
	Recent(ctx context.Context, limit int) ([]domainchat.Message, error)
}
