package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	domainchat "github.com/alanyang/tailor-flow/internal/domain/chat"
	portchat "github.com/alanyang/tailor-flow/internal/port/chat"
)

var _ portchat.Repository = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, msg domainchat.Message) (domainchat.Message, error) {
	query := `
		INSERT INTO chat_messages (id, sender, text, image, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sender, text, image, created_at`

	var created domainchat.Message
	err := r.pool.QueryRow(ctx, query, msg.ID, msg.Sender, msg.Text, msg.Image, msg.CreatedAt).Scan(
		&created.ID, &created.Sender, &created.Text, &created.Image, &created.CreatedAt,
	)
	if err != nil {
		return domainchat.Message{}, fmt.Errorf("inserting chat message: %w", err)
	}
	return created, nil
}

// Recent picks the newest limit rows and returns them oldest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]domainchat.Message, error) {
	query := `
		SELECT id, sender, text, image, created_at FROM (
			SELECT id, sender, text, image, created_at
			FROM chat_messages ORDER BY created_at DESC LIMIT $1
		) latest ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	msgs := []domainchat.Message{}
	for rows.Next() {
		var m domainchat.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Text, &m.Image, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
