package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/tailor-flow/internal/adapter/memory"
	pgdb "github.com/alanyang/tailor-flow/internal/adapter/postgres"
	pgchat "github.com/alanyang/tailor-flow/internal/adapter/postgres/chat"
	pgeventbus "github.com/alanyang/tailor-flow/internal/adapter/postgres/eventbus"
	pgidem "github.com/alanyang/tailor-flow/internal/adapter/postgres/idempotency"
	pglocker "github.com/alanyang/tailor-flow/internal/adapter/postgres/locker"
	pgorder "github.com/alanyang/tailor-flow/internal/adapter/postgres/order"
	pgpresence "github.com/alanyang/tailor-flow/internal/adapter/postgres/presence"
	"github.com/alanyang/tailor-flow/internal/config"
	"github.com/alanyang/tailor-flow/internal/metrics"
	portidem "github.com/alanyang/tailor-flow/internal/port/idempotency"

	chatsvc "github.com/alanyang/tailor-flow/internal/service/chat"
	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	ordersvc "github.com/alanyang/tailor-flow/internal/service/order"
	presencesvc "github.com/alanyang/tailor-flow/internal/service/presence"

	"github.com/alanyang/tailor-flow/internal/transport"
	mcptransport "github.com/alanyang/tailor-flow/internal/transport/mcp"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Config    config.Config
	Pool      *pgxpool.Pool
	Server    *http.Server
	EventBus  *pgeventbus.EventBus
	MCPServer *mcptransport.Server
}

// Close releases the event bus listeners and the pool.
func (a *App) Close() {
	a.EventBus.Close()
	a.Pool.Close()
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies. Background loops stop when ctx is done.
func Build(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// ── Database ─────────────────────────────────────────────────────────────
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	pool, err := pgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pgdb.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	// ── Adapters ─────────────────────────────────────────────────────────────
	orderRepo := pgorder.New(pool)
	chatRepo := pgchat.New(pool)
	presenceRepo := pgpresence.New(pool)
	eventBus := pgeventbus.New(pool)
	locker := pglocker.New(pool)

	var idem interface {
		portidem.Store
		purger
	}
	switch cfg.IdempotencyStore {
	case config.StoreMemory:
		idem = memory.NewCache()
	default:
		idem = pgidem.New(pool)
	}

	roster := config.NewRosterWatcherFor(cfg)
	go roster.Run(ctx)

	// ── Services ─────────────────────────────────────────────────────────────
	orderSvc := ordersvc.NewService(orderRepo, orderRepo, eventBus, locker)
	chatSvc := chatsvc.NewService(chatRepo, eventBus)
	presenceSvc := presencesvc.NewService(presenceRepo, eventBus, cfg.PresenceWindow)
	distSvc := distsvc.NewService(orderRepo, roster, eventBus, chatSvc)

	mcpServer := mcptransport.New(orderSvc, distSvc, presenceSvc)
	distSvc.WithNotifier(mcpServer.Registry())

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(ctx, transport.Deps{
		Orders:         orderSvc,
		Distributor:    distSvc,
		Chat:           chatSvc,
		Presence:       presenceSvc,
		MCP:            mcpServer,
		EventBus:       eventBus,
		Idempotency:    idem,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Metrics:        metrics.NewRegistry(),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	slog.Info("application wired",
		"port", cfg.Port,
		"config", cfg.Path,
		"roster", cfg.Roster,
		"idempotency_store", cfg.IdempotencyStore,
	)

	// ── Presence sweeper ──────────────────────────────────────────────────────
	sw := &sweeper{
		locker:    locker,
		presence:  presenceSvc,
		keys:      idem,
		keysLocal: cfg.IdempotencyStore == config.StoreMemory,
		every:     cfg.PresenceSweep,
	}
	go sw.run(ctx)

	return &App{
		Config:    cfg,
		Pool:      pool,
		Server:    server,
		EventBus:  eventBus,
		MCPServer: mcpServer,
	}, nil
}
