package commands

import (
	"context"

	"mtgmcp/internal/application"
	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

// SearchCardsCommand runs a card database search
type SearchCardsCommand struct {
	cards   ports.CardDatabase
	Options domain.SearchOptions
}

// NewSearchCardsCommand creates a new SearchCardsCommand
func NewSearchCardsCommand(cards ports.CardDatabase, opts domain.SearchOptions) *SearchCardsCommand {
	return &SearchCardsCommand{
		cards:   cards,
		Options: opts,
	}
}

// Validate fills in defaults and rejects malformed options
func (c *SearchCardsCommand) Validate() error {
	return application.ValidateSearch(&c.Options)
}

// Execute runs the search. No matches yields an empty result, not an error.
func (c *SearchCardsCommand) Execute(ctx context.Context) (*domain.SearchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.cards.Search(ctx, c.Options)
}
