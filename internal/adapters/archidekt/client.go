package archidekt

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"mtgmcp/internal/adapters/httpfetch"
	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

const DefaultBaseURL = "https://archidekt.com/api"

// deck is the part of an Archidekt deck we read
type deck struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DeckFormat  int        `json:"deckFormat"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
	Owner       *owner     `json:"owner"`
	Categories  []category `json:"categories"`
	Cards       []deckCard `json:"cards"`
}

type owner struct {
	Username string `json:"username"`
}

type category struct {
	Name           string `json:"name"`
	IncludedInDeck bool   `json:"includedInDeck"`
}

type deckCard struct {
	Quantity   int      `json:"quantity"`
	Categories []string `json:"categories"`
	Card       *struct {
		OracleCard *struct {
			Name string `json:"name"`
		} `json:"oracleCard"`
	} `json:"card"`
}

func (c *deckCard) name() string {
	if c.Card == nil || c.Card.OracleCard == nil {
		return ""
	}
	return c.Card.OracleCard.Name
}

// Client loads decks from Archidekt and resolves their cards through the card database
type Client struct {
	fetcher ports.Fetcher
	cards   ports.CardLookup
	baseURL string
	logger  *zap.Logger
}

var _ ports.DeckSource = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at a different API root
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates an Archidekt client sharing fetcher with the other clients
func NewClient(fetcher ports.Fetcher, cards ports.CardLookup, opts ...Option) *Client {
	c := &Client{
		fetcher: fetcher,
		cards:   cards,
		baseURL: DefaultBaseURL,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deck fetches deckID and resolves each unique card once, in first-appearance order.
// Quantity and categories come from the first entry for each name.
func (c *Client) Deck(ctx context.Context, deckID string) (*domain.Deck, error) {
	u := fmt.Sprintf("%s/decks/%s/", c.baseURL, url.PathEscape(deckID))

	var raw deck
	if err := httpfetch.GetJSON(ctx, c.fetcher, u, &raw); err != nil {
		return nil, httpfetch.Upstream("get deck", deckID, err)
	}

	categories := make(map[string]category, len(raw.Categories))
	for _, cat := range raw.Categories {
		if _, seen := categories[cat.Name]; !seen {
			categories[cat.Name] = cat
		}
	}

	out := &domain.Deck{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Format:      domain.FormatLabel(raw.DeckFormat),
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
		Cards:       []domain.DeckCard{},
	}
	if raw.Owner != nil {
		out.Owner = raw.Owner.Username
	}

	seen := make(map[string]bool, len(raw.Cards))
	for i := range raw.Cards {
		entry := &raw.Cards[i]
		name := entry.name()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		card, err := c.cards.CardByName(ctx, name)
		if err != nil {
			return nil, httpfetch.Upstream("get deck", deckID, fmt.Errorf("resolve card %q: %w", name, err))
		}

		out.Cards = append(out.Cards, domain.DeckCard{
			Card:       *card,
			Quantity:   entry.Quantity,
			Categories: resolveCategories(entry.Categories, categories),
		})
	}

	c.logger.Debug("deck resolved",
		zap.String("deck_id", deckID),
		zap.Int("unique_cards", len(out.Cards)),
	)
	return out, nil
}

// resolveCategories maps category names onto the deck's declared categories.
// Undeclared names become the Unknown Category default.
func resolveCategories(names []string, declared map[string]category) []domain.CategoryMembership {
	out := make([]domain.CategoryMembership, 0, len(names))
	for _, name := range names {
		cat, ok := declared[name]
		if !ok {
			out = append(out, domain.DefaultCategory())
			continue
		}
		out = append(out, domain.CategoryMembership{Name: cat.Name, IncludedInDeck: cat.IncludedInDeck})
	}
	return out
}
