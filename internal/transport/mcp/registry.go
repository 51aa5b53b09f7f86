package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"

	portnotifier "github.com/alanyang/tailor-flow/internal/port/notifier"
)

var _ portnotifier.WorkerNotifier = (*SessionRegistry)(nil)

// SessionRegistry maps open MCP sessions to the worker that checked in on them.
// [SRP] Session bookkeeping and notification dispatch only.
type SessionRegistry struct {
	mu        sync.RWMutex
	bySession map[string]string // sessionID → worker
	byWorker  map[string]string // worker → sessionID

	// mcpSrv is set after the MCP server is constructed (avoids circular init dependency).
	mcpMu  sync.RWMutex
	mcpSrv *mcpserver.MCPServer
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		bySession: make(map[string]string),
		byWorker:  make(map[string]string),
	}
}

func (r *SessionRegistry) SetMCPServer(s *mcpserver.MCPServer) {
	r.mcpMu.Lock()
	r.mcpSrv = s
	r.mcpMu.Unlock()
}

// Register binds a session to a worker. A worker checking in again from a new
// session moves to that session.
func (r *SessionRegistry) Register(sessionID, worker string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byWorker[worker]; ok {
		delete(r.bySession, old)
	}
	if prev, ok := r.bySession[sessionID]; ok {
		delete(r.byWorker, prev)
	}
	r.bySession[sessionID] = worker
	r.byWorker[worker] = sessionID
}

// Unregister forgets a closed session and returns the worker it belonged to.
func (r *SessionRegistry) Unregister(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	worker, ok := r.bySession[sessionID]
	if !ok {
		return "", false
	}
	delete(r.bySession, sessionID)
	delete(r.byWorker, worker)
	return worker, true
}

func (r *SessionRegistry) IsConnected(worker string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byWorker[worker]
	return ok
}

// NotifyWorker sends event to the worker's session. A worker without one is a no-op.
func (r *SessionRegistry) NotifyWorker(_ context.Context, worker string, event any) error {
	r.mu.RLock()
	sessionID, ok := r.byWorker[worker]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	srv := r.server()
	if srv == nil {
		return fmt.Errorf("mcp server not initialized")
	}
	params, err := toParams(event)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}
	return srv.SendNotificationToSpecificClient(sessionID, "notifications/message", params)
}

// NotifyAll sends event to every checked-in session and returns the last failure.
func (r *SessionRegistry) NotifyAll(_ context.Context, event any) error {
	params, err := toParams(event)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}

	r.mu.RLock()
	targets := make([]string, 0, len(r.bySession))
	for sessionID := range r.bySession {
		targets = append(targets, sessionID)
	}
	r.mu.RUnlock()

	srv := r.server()
	if srv == nil {
		return nil
	}
	var lastErr error
	for _, sessionID := range targets {
		if err := srv.SendNotificationToSpecificClient(sessionID, "notifications/message", params); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (r *SessionRegistry) server() *mcpserver.MCPServer {
	r.mcpMu.RLock()
	defer r.mcpMu.RUnlock()
	return r.mcpSrv
}

func toParams(event any) (map[string]any, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return map[string]any{"data": event}, nil
	}
	return params, nil
}
