package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alanyang/tailor-flow/internal/domain/event"
	porteventbus "github.com/alanyang/tailor-flow/internal/port/eventbus"
	portidem "github.com/alanyang/tailor-flow/internal/port/idempotency"
	chatsvc "github.com/alanyang/tailor-flow/internal/service/chat"
	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	ordersvc "github.com/alanyang/tailor-flow/internal/service/order"
	presencesvc "github.com/alanyang/tailor-flow/internal/service/presence"

	chathandler "github.com/alanyang/tailor-flow/internal/transport/chat"
	disthandler "github.com/alanyang/tailor-flow/internal/transport/distribution"
	mcptransport "github.com/alanyang/tailor-flow/internal/transport/mcp"
	orderhandler "github.com/alanyang/tailor-flow/internal/transport/order"
	presencehandler "github.com/alanyang/tailor-flow/internal/transport/presence"
	wshandler "github.com/alanyang/tailor-flow/internal/transport/ws"
)

// Deps is everything the router mounts. MCP is optional.
type Deps struct {
	Orders         *ordersvc.Service
	Distributor    *distsvc.Service
	Chat           *chatsvc.Service
	Presence       *presencesvc.Service
	MCP            *mcptransport.Server
	EventBus       porteventbus.EventBus
	Idempotency    portidem.Store
	IdempotencyTTL time.Duration
	Metrics        *prometheus.Registry
}

func NewRouter(ctx context.Context, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())
	r.Use(MetricsMiddleware())
	r.Use(IdempotencyMiddleware(d.Idempotency, d.IdempotencyTTL))

	api := r.Group("/api")

	orderhandler.Register(api.Group("/orders"), d.Orders)
	disthandler.Register(api.Group("/distributions"), d.Distributor)
	chathandler.Register(api.Group("/chat"), d.Chat)
	presencehandler.Register(api.Group("/presence"), d.Presence)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	if d.MCP != nil {
		r.Any("/mcp", gin.WrapH(d.MCP.Handler()))
	}
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	// Bridge: one subscription per domain channel. Every event goes to WS
	// clients; chat messages also reach checked-in MCP sessions. Allocations are
	// pushed per worker by the distributor itself.
	for _, ch := range event.Channels {
		c := ch
		if _, err := d.EventBus.Subscribe(ctx, c, func(ctx context.Context, e event.Event) {
			hub.Broadcast(e)
			if d.MCP != nil && e.Type == event.TypeChatMessage {
				if err := d.MCP.Registry().NotifyAll(ctx, e); err != nil {
					slog.WarnContext(ctx, "notify mcp sessions failed", "key", e.Key, "error", err)
				}
			}
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", c, "error", err)
		}
	}

	return r
}
