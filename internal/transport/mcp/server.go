package mcp

import (
	"context"
	"log/slog"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	ordersvc "github.com/alanyang/tailor-flow/internal/service/order"
	presencesvc "github.com/alanyang/tailor-flow/internal/service/presence"
)

// Server wraps the mark3labs/mcp-go MCPServer and its StreamableHTTPServer.
// [SRP] HTTP server lifecycle and session close handling only.
//
//	Tools are registered in tools.go, prompts in prompts.go, session state in registry.go.
type Server struct {
	httpSrv     *mcpserver.StreamableHTTPServer
	reg         *SessionRegistry
	presenceSvc *presencesvc.Service
}

func New(
	orderSvc *ordersvc.Service,
	distSvc *distsvc.Service,
	presenceSvc *presencesvc.Service,
) *Server {
	s := &Server{
		reg:         NewSessionRegistry(),
		presenceSvc: presenceSvc,
	}

	hooks := &mcpserver.Hooks{}
	hooks.OnUnregisterSession = append(hooks.OnUnregisterSession, s.onSessionClose)

	mcpSrv := mcpserver.NewMCPServer(
		"tailor-flow",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithPromptCapabilities(true),
		mcpserver.WithHooks(hooks),
	)
	s.reg.SetMCPServer(mcpSrv)

	RegisterTools(mcpSrv, s.reg, orderSvc, distSvc, presenceSvc)
	RegisterPrompts(mcpSrv, distSvc)

	s.httpSrv = mcpserver.NewStreamableHTTPServer(mcpSrv)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpSrv
}

func (s *Server) Registry() *SessionRegistry {
	return s.reg
}

// onSessionClose marks the session's worker offline right away instead of waiting
// for the presence window to lapse.
func (s *Server) onSessionClose(ctx context.Context, session mcpserver.ClientSession) {
	worker, ok := s.reg.Unregister(session.SessionID())
	if !ok {
		return
	}
	slog.InfoContext(ctx, "mcp: session closed", "session_id", session.SessionID(), "worker", worker)
	if err := s.presenceSvc.Leave(context.WithoutCancel(ctx), worker); err != nil {
		slog.ErrorContext(ctx, "mcp: leave on session close failed", "worker", worker, "error", err)
	}
}
