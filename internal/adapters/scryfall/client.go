package scryfall

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"mtgmcp/internal/adapters/httpfetch"
	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

const DefaultBaseURL = "https://api.scryfall.com"

// Client reads cards, rulings and searches from the Scryfall API.
// Card lookups go through the card cache first.
type Client struct {
	fetcher ports.Fetcher
	cache   ports.CardStore
	baseURL string
	logger  *zap.Logger
}

var _ ports.CardDatabase = (*Client)(nil)

// Option configures the Client
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

// NewClient creates a Scryfall client sharing fetcher with the other clients
func NewClient(fetcher ports.Fetcher, cache ports.CardStore, opts ...Option) *Client {
	c := &Client{
		fetcher: fetcher,
		cache:   cache,
		baseURL: DefaultBaseURL,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CardByName returns the card for name. A cached card is returned without any
// network call; otherwise Scryfall's fuzzy lookup is used and the result cached.
func (c *Client) CardByName(ctx context.Context, name string) (*domain.Card, error) {
	if card, ok := c.cache.Get(name); ok {
		c.logger.Debug("card cache hit", zap.String("name", name))
		return card, nil
	}

	u := c.baseURL + "/cards/named?" + url.Values{"fuzzy": {name}}.Encode()

	var raw card
	if err := httpfetch.GetJSON(ctx, c.fetcher, u, &raw); err != nil {
		return nil, httpfetch.Upstream("get card", name, err)
	}

	out := raw.toDomain()
	c.cache.Put(name, out)
	return &out, nil
}

// FetchRulings returns the flattened rulings behind rulingsURI
func (c *Client) FetchRulings(ctx context.Context, rulingsURI string) ([]domain.Ruling, error) {
	if rulingsURI == "" {
		return nil, errors.New("card has no rulings reference")
	}

	var raw rulingList
	if err := httpfetch.GetJSON(ctx, c.fetcher, rulingsURI, &raw); err != nil {
		return nil, httpfetch.Upstream("get rulings", rulingsURI, err)
	}

	rulings := make([]domain.Ruling, 0, len(raw.Data))
	for _, r := range raw.Data {
		rulings = append(rulings, domain.Ruling{
			OracleID: r.OracleID,
			Source:   r.Source,
			Comment:  r.Comment,
		})
	}
	return rulings, nil
}

// Rulings is FetchRulings with failures collapsed to an empty list
func (c *Client) Rulings(ctx context.Context, rulingsURI string) []domain.Ruling {
	rulings, err := c.FetchRulings(ctx, rulingsURI)
	if err != nil {
		c.logger.Warn("rulings unavailable", zap.String("uri", rulingsURI), zap.Error(err))
		return []domain.Ruling{}
	}
	return rulings
}

// Search runs a full-text card search. No matches is an empty result, not an error.
// Only the first page is read, truncated to opts.MaxResults.
func (c *Client) Search(ctx context.Context, opts domain.SearchOptions) (*domain.SearchResult, error) {
	u := c.baseURL + "/cards/search?" + searchParams(opts).Encode()

	var raw cardList
	if err := httpfetch.GetJSON(ctx, c.fetcher, u, &raw); err != nil {
		if httpfetch.IsNotFound(err) {
			return domain.EmptySearchResult(), nil
		}
		return nil, httpfetch.Upstream("search cards", opts.Query, err)
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = domain.DefaultMaxResults
	}
	if len(raw.Data) > limit {
		raw.Data = raw.Data[:limit]
	}

	result := &domain.SearchResult{
		TotalCards: raw.TotalCards,
		HasMore:    raw.HasMore,
		NextPage:   raw.NextPage,
		Data:       make([]domain.Card, 0, len(raw.Data)),
	}
	for i := range raw.Data {
		result.Data = append(result.Data, raw.Data[i].toDomain())
	}
	return result, nil
}

func searchParams(opts domain.SearchOptions) url.Values {
	unique := opts.Unique
	if unique == "" {
		unique = domain.UniqueCards
	}
	order := opts.Order
	if order == "" {
		order = domain.DefaultOrder
	}

	return url.Values{
		"q":              {opts.Query},
		"unique":         {string(unique)},
		"order":          {order},
		"include_extras": {strconv.FormatBool(opts.IncludeExtras)},
	}
}
