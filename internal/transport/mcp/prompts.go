package mcp

import (
	"context"
	"fmt"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
)

// RegisterPrompts registers the pecah_rata prompt, which hands the client the
// chat-ready distribution sheet for a set of orders.
func RegisterPrompts(s *mcpserver.MCPServer, distSvc *distsvc.Service) {
	s.AddPrompt(
		mcpmcp.NewPrompt("pecah_rata",
			mcpmcp.WithPromptDescription("Distribution sheet for the given orders, ready to share with the workshop."),
			mcpmcp.WithArgument("order_codes",
				mcpmcp.ArgumentDescription("Comma-separated order codes"),
				mcpmcp.RequiredArgument(),
			),
			mcpmcp.WithArgument("roster",
				mcpmcp.ArgumentDescription("Comma-separated worker names. Defaults to the configured roster."),
			),
		),
		pecahRataHandler(distSvc),
	)
}

func pecahRataHandler(distSvc *distsvc.Service) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		codes := splitList(req.Params.Arguments["order_codes"])
		if len(codes) == 0 {
			return nil, fmt.Errorf("order_codes required")
		}

		res, err := distSvc.Distribute(ctx, distsvc.Request{
			OrderCodes: codes,
			Roster:     splitList(req.Params.Arguments["roster"]),
		})
		if err != nil {
			return nil, fmt.Errorf("distribute %v: %w", codes, err)
		}

		return mcpmcp.NewGetPromptResult(
			"Distribution sheet",
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(
					mcpmcp.RoleUser,
					mcpmcp.TextContent{
						Type: "text",
						Text: res.Message,
					},
				),
			},
		), nil
	}
}
