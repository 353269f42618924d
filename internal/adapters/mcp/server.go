package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const instructions = `Magic: The Gathering card and deck data.
Use get_card_data for exact cards, search_cards for Scryfall queries, and get_deck for Archidekt decks.
Card data is cached locally; rulings and similar cards are optional extras and may come back empty.`

// NewServer builds the MCP server with every tool registered
func NewServer(name, version string, deps Deps, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
		server.WithToolHandlerMiddleware(LoggingMiddleware(logger)),
	)

	s.AddTool(pingTool(), pingHandler)
	RegisterReadTools(s, deps)
	return s
}

// --- ping ---

func pingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Health check. Returns pong"),
	)
}

func pingHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong"), nil
}

// LoggingMiddleware logs every tool call with a request id, duration and outcome
func LoggingMiddleware(logger *zap.Logger) server.ToolHandlerMiddleware {
	logger = logger.Named("tools")

	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			log := logger.With(
				zap.String("request_id", uuid.NewString()),
				zap.String("tool", req.Params.Name),
			)
			start := time.Now()

			result, err := next(ctx, req)

			elapsed := zap.Duration("duration", time.Since(start))
			switch {
			case err != nil:
				log.Warn("tool call rejected", elapsed, zap.Error(err))
			case result != nil && result.IsError:
				log.Warn("tool call failed", elapsed, zap.String("message", resultText(result)))
			default:
				log.Info("tool call", elapsed)
			}
			return result, err
		}
	}
}

func resultText(r *mcp.CallToolResult) string {
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
