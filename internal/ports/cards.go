package ports

import (
	"context"

	"mtgmcp/internal/domain"
)

// CardLookup resolves a card by name
type CardLookup interface {
	// CardByName returns the card for name, from cache when present
	CardByName(ctx context.Context, name string) (*domain.Card, error)
}

// CardDatabase provides card lookups from the card database
type CardDatabase interface {
	CardLookup

	// Rulings returns the flattened rulings behind a rulings URI.
	// Failures collapse to an empty slice.
	Rulings(ctx context.Context, rulingsURI string) []domain.Ruling

	// Search runs a card search and truncates the result to opts.MaxResults
	Search(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResult, error)
}

// Recommender provides similar-card recommendations
type Recommender interface {
	// SimilarCards returns recommendations for name. Failures collapse to an empty slice.
	SimilarCards(ctx context.Context, name string) []domain.SimilarCard
}

// DeckSource loads decks from the deck builder
type DeckSource interface {
	Deck(ctx context.Context, deckID string) (*domain.Deck, error)
}

// CacheInitializer prepares the on-disk cache layout
type CacheInitializer interface {
	Ensure() error
}
