package commands

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mtgmcp/internal/application"
	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

// GetCardsCommand resolves a list of card names, optionally enriched with
// rulings and similar cards. Lookups run concurrently; the shared fetcher
// spaces out the resulting upstream calls.
type GetCardsCommand struct {
	cards          ports.CardDatabase
	recommender    ports.Recommender
	Names          []string
	IncludeRulings bool
	IncludeSimilar bool
}

// NewGetCardsCommand creates a new GetCardsCommand
func NewGetCardsCommand(cards ports.CardDatabase, recommender ports.Recommender, names []string) *GetCardsCommand {
	return &GetCardsCommand{
		cards:       cards,
		recommender: recommender,
		Names:       names,
	}
}

// Validate checks that at least one non-blank name was given
func (c *GetCardsCommand) Validate() error {
	return application.ValidateNames("card_names", c.Names)
}

// Execute returns one card per name in input order. The first failed lookup fails the whole call.
// Names are passed to the card database exactly as given. Requested enrichment
// is always present on the result, as an empty list when nothing was found.
func (c *GetCardsCommand) Execute(ctx context.Context) ([]domain.Card, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	results := make([]domain.Card, len(c.Names))
	g, gctx := errgroup.WithContext(ctx)

	for i, name := range c.Names {
		g.Go(func() error {
			card, err := c.cards.CardByName(gctx, name)
			if err != nil {
				return err
			}

			out := *card
			if c.IncludeRulings {
				out.Rulings = orEmpty(c.cards.Rulings(gctx, card.RulingsURI))
			}
			if c.IncludeSimilar {
				var similar []domain.SimilarCard
				if c.recommender != nil {
					similar = c.recommender.SimilarCards(gctx, card.Name)
				}
				out.SimilarCards = orEmpty(similar)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
