package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/tailor-flow/internal/domain/event"
)

// minFreeConns is what stays available to queries once every event channel
// holds its LISTEN connection.
const minFreeConns = 4

// Connect opens a pool sized so the event bus listeners cannot starve queries.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	if floor := int32(len(event.Channels) + minFreeConns); config.MaxConns < floor {
		config.MaxConns = floor
	}
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}
