package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	ordersvc "github.com/alanyang/tailor-flow/internal/service/order"
	presencesvc "github.com/alanyang/tailor-flow/internal/service/presence"
)

// RegisterTools registers all MCP tools on the server.
// [OCP] Add a new tool by adding a new AddTool call; server.go never changes.
func RegisterTools(
	s *mcpserver.MCPServer,
	reg *SessionRegistry,
	orderSvc *ordersvc.Service,
	distSvc *distsvc.Service,
	presenceSvc *presencesvc.Service,
) {
	s.AddTool(mcpmcp.NewTool("check_in",
		mcpmcp.WithDescription("Mark a worker online for this session. Closing the session marks the worker offline."),
		mcpmcp.WithString("worker", mcpmcp.Required(), mcpmcp.Description("Worker name as it appears on the roster")),
	), checkInHandler(reg, presenceSvc))

	s.AddTool(mcpmcp.NewTool("distribute_orders",
		mcpmcp.WithDescription("Split stored orders fairly across workers. Whole size piles are kept together where possible; a pile is only split by the exact amount a worker still needs."),
		mcpmcp.WithString("order_codes", mcpmcp.Required(), mcpmcp.Description("Comma-separated order codes")),
		mcpmcp.WithString("roster", mcpmcp.Description("Comma-separated worker names in priority order. Defaults to the configured roster.")),
		mcpmcp.WithString("share_as", mcpmcp.Description("Post the text sheet into the workshop chat under this sender name")),
		mcpmcp.WithString("format", mcpmcp.Description("json (default) or text")),
		mcpmcp.WithString("worker", mcpmcp.Description("Return only this worker's allocation as JSON")),
	), distributeHandler(distSvc))

	s.AddTool(mcpmcp.NewTool("search_orders",
		mcpmcp.WithDescription("Find orders whose code, tailor or customer contains the query, case-insensitively."),
		mcpmcp.WithString("q", mcpmcp.Required(), mcpmcp.Description("Search text")),
	), searchOrdersHandler(orderSvc))

	s.AddTool(mcpmcp.NewTool("get_order",
		mcpmcp.WithDescription("Return one order with its full size breakdown."),
		mcpmcp.WithString("code", mcpmcp.Required(), mcpmcp.Description("Order code")),
	), getOrderHandler(orderSvc))

	s.AddTool(mcpmcp.NewTool("list_online_workers",
		mcpmcp.WithDescription("List workers with a recent heartbeat."),
	), listOnlineHandler(presenceSvc))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func checkInHandler(reg *SessionRegistry, presenceSvc *presencesvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		worker := strings.TrimSpace(mcpmcp.ParseString(req, "worker", ""))
		if worker == "" {
			return mcpmcp.NewToolResultText("error: worker required"), nil
		}
		if err := presenceSvc.Heartbeat(ctx, worker); err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
			reg.Register(session.SessionID(), worker)
		}
		return mcpmcp.NewToolResultText(`{"ok":true}`), nil
	}
}

func distributeHandler(distSvc *distsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		codes := splitList(mcpmcp.ParseString(req, "order_codes", ""))
		if len(codes) == 0 {
			return mcpmcp.NewToolResultText("error: order_codes required"), nil
		}

		res, err := distSvc.Distribute(ctx, distsvc.Request{
			OrderCodes: codes,
			Roster:     splitList(mcpmcp.ParseString(req, "roster", "")),
			ShareAs:    mcpmcp.ParseString(req, "share_as", ""),
		})
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		if worker := strings.TrimSpace(mcpmcp.ParseString(req, "worker", "")); worker != "" {
			a, ok := res.Report.Allocation(worker)
			if !ok {
				return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s is not on the roster", worker)), nil
			}
			data, _ := json.Marshal(a)
			return mcpmcp.NewToolResultText(string(data)), nil
		}
		if mcpmcp.ParseString(req, "format", "json") == "text" {
			return mcpmcp.NewToolResultText(res.Message), nil
		}
		data, _ := json.Marshal(res)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func searchOrdersHandler(orderSvc *ordersvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		orders, err := orderSvc.Search(ctx, mcpmcp.ParseString(req, "q", ""))
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		data, _ := json.Marshal(orders)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func getOrderHandler(orderSvc *ordersvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		code := strings.TrimSpace(mcpmcp.ParseString(req, "code", ""))
		if code == "" {
			return mcpmcp.NewToolResultText("error: code required"), nil
		}
		o, err := orderSvc.GetByCode(ctx, code)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		data, _ := json.Marshal(o)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func listOnlineHandler(presenceSvc *presencesvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, _ mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		names, err := presenceSvc.OnlineNames(ctx)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		data, _ := json.Marshal(names)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

// splitList parses a comma-separated argument, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
