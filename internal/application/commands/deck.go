package commands

import (
	"context"
	"strings"

	"mtgmcp/internal/application"
	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

// GetDeckCommand loads a deck with every card resolved
type GetDeckCommand struct {
	decks  ports.DeckSource
	DeckID string
}

// NewGetDeckCommand creates a new GetDeckCommand
func NewGetDeckCommand(decks ports.DeckSource, deckID string) *GetDeckCommand {
	return &GetDeckCommand{
		decks:  decks,
		DeckID: deckID,
	}
}

func (c *GetDeckCommand) Validate() error {
	return application.ValidateRequired("deck_id", c.DeckID)
}

// Execute fetches the deck
func (c *GetDeckCommand) Execute(ctx context.Context) (*domain.Deck, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.decks.Deck(ctx, strings.TrimSpace(c.DeckID))
}

// SimilarCardsCommand lists recommendations for a single card
type SimilarCardsCommand struct {
	recommender ports.Recommender
	Name        string
}

// NewSimilarCardsCommand creates a new SimilarCardsCommand
func NewSimilarCardsCommand(recommender ports.Recommender, name string) *SimilarCardsCommand {
	return &SimilarCardsCommand{
		recommender: recommender,
		Name:        name,
	}
}

func (c *SimilarCardsCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute returns the recommendations; an unavailable upstream yields an empty list
func (c *SimilarCardsCommand) Execute(ctx context.Context) ([]domain.SimilarCard, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.recommender.SimilarCards(ctx, strings.TrimSpace(c.Name)), nil
}
