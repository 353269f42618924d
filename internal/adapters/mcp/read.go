package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mtgmcp/internal/application"
	"mtgmcp/internal/application/commands"
	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

// Deps are the collaborators behind the card and deck tools
type Deps struct {
	Cache       ports.CacheInitializer
	Cards       ports.CardDatabase
	Recommender ports.Recommender
	Decks       ports.DeckSource
}

// RegisterReadTools adds the card and deck lookup tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(getCardDataTool(), getCardDataHandler(deps))
	s.AddTool(searchCardsTool(), searchCardsHandler(deps))
	s.AddTool(getDeckTool(), getDeckHandler(deps))
}

// --- get_card_data ---

func getCardDataTool() mcp.Tool {
	return mcp.NewTool("get_card_data",
		mcp.WithDescription("Look up Magic: The Gathering cards by name (fuzzy matched). Returns one card per name, in the order given."),
		mcp.WithArray("card_names",
			mcp.Description("Card names to look up, e.g. [\"Lightning Bolt\", \"Sol Ring\"]"),
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.MinItems(1),
		),
		mcp.WithBoolean("include_rulings",
			mcp.Description("Attach official rulings to each card"),
			mcp.DefaultBool(false),
		),
		mcp.WithBoolean("include_similar",
			mcp.Description("Attach similar-card recommendations to each card"),
			mcp.DefaultBool(false),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getCardDataHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := req.RequireStringSlice("card_names")
		if err != nil {
			return invalidParams(err)
		}

		cmd := commands.NewGetCardsCommand(deps.Cards, deps.Recommender, names)
		cmd.IncludeRulings = req.GetBool("include_rulings", false)
		cmd.IncludeSimilar = req.GetBool("include_similar", false)
		if err := cmd.Validate(); err != nil {
			return invalidParams(err)
		}
		if err := ensureCache(deps.Cache); err != nil {
			return nil, err
		}

		cards, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(cards)
	}
}

// --- search_cards ---

func searchCardsTool() mcp.Tool {
	return mcp.NewTool("search_cards",
		mcp.WithDescription("Search cards with Scryfall query syntax (e.g. \"t:goblin c:r cmc<=2\"). Returns the total match count, whether more pages exist, and up to max_results cards."),
		mcp.WithString("query",
			mcp.Description("Scryfall search query"),
			mcp.Required(),
		),
		mcp.WithNumber("max_results",
			mcp.Description(fmt.Sprintf("Maximum cards to return (default %d, at most %d)", domain.DefaultMaxResults, domain.MaxResultsCeiling)),
			mcp.DefaultNumber(domain.DefaultMaxResults),
			mcp.Min(1),
			mcp.Max(domain.MaxResultsCeiling),
		),
		mcp.WithString("unique",
			mcp.Description("How duplicate printings are collapsed"),
			mcp.Enum(domain.UniqueModes...),
			mcp.DefaultString(string(domain.UniqueCards)),
		),
		mcp.WithString("order",
			mcp.Description("Sort order"),
			mcp.Enum(domain.SortOrders...),
			mcp.DefaultString(domain.DefaultOrder),
		),
		mcp.WithBoolean("include_extras",
			mcp.Description("Include tokens, emblems and other extras"),
			mcp.DefaultBool(false),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func searchCardsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSearchCardsCommand(deps.Cards, domain.SearchOptions{
			Query:         req.GetString("query", ""),
			MaxResults:    req.GetInt("max_results", 0),
			Unique:        domain.UniqueMode(req.GetString("unique", "")),
			Order:         req.GetString("order", ""),
			IncludeExtras: req.GetBool("include_extras", false),
		})
		if err := cmd.Validate(); err != nil {
			return invalidParams(err)
		}
		if err := ensureCache(deps.Cache); err != nil {
			return nil, err
		}

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(result)
	}
}

// --- get_deck ---

func getDeckTool() mcp.Tool {
	return mcp.NewTool("get_deck",
		mcp.WithDescription("Fetch an Archidekt deck by id with full card data, quantities and categories."),
		mcp.WithString("deck_id",
			mcp.Description("Archidekt deck id, e.g. \"1234567\""),
			mcp.Required(),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getDeckHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewGetDeckCommand(deps.Decks, deckID(req))
		if err := cmd.Validate(); err != nil {
			return invalidParams(err)
		}
		if err := ensureCache(deps.Cache); err != nil {
			return nil, err
		}

		deck, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(deck)
	}
}

// deckID accepts the id as a string or a bare number
func deckID(req mcp.CallToolRequest) string {
	switch v := req.GetArguments()["deck_id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, application.ErrInvalidParams) {
		return invalidParams(err)
	}
	return mcp.NewToolResultError(err.Error()), nil
}

// invalidParams surfaces err as a protocol-level error. mcp-go reports every
// handler error as INTERNAL_ERROR (-32603), so callers see this as -32603 with
// an "invalid params" message prefix, not as -32602.
func invalidParams(err error) (*mcp.CallToolResult, error) {
	return nil, fmt.Errorf("%w: %v", mcp.ErrInvalidParams, err)
}

// ensureCache prepares the cache layout; failure is a protocol-level internal error
func ensureCache(cache ports.CacheInitializer) error {
	if cache == nil {
		return nil
	}
	if err := cache.Ensure(); err != nil {
		return fmt.Errorf("%w: %w: %v", mcp.ErrInternalError, application.ErrCache, err)
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encoding result: %v", mcp.ErrInternalError, err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
