package edhrec

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mtgmcp/internal/adapters/httpfetch"
	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

const DefaultBaseURL = "https://json.edhrec.com/pages"

// cardPage is the part of EDHREC's card page we read
type cardPage struct {
	Similar []similar `json:"similar"`
}

type similar struct {
	Name          string   `json:"name"`
	ColorIdentity []string `json:"color_identity"`
	CMC           float64  `json:"cmc"`
	PrimaryType   string   `json:"primary_type"`
	ImageURIs     []struct {
		Normal  string `json:"normal"`
		ArtCrop string `json:"art_crop"`
	} `json:"image_uris"`
}

// Client reads similar-card recommendations from EDHREC's JSON pages.
// Results, including empty ones, are cached by card slug.
type Client struct {
	fetcher ports.Fetcher
	cache   ports.SimilarStore
	baseURL string
	logger  *zap.Logger
}

var _ ports.Recommender = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at a different pages root
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

// NewClient creates an EDHREC client sharing fetcher with the other clients
func NewClient(fetcher ports.Fetcher, cache ports.SimilarStore, opts ...Option) *Client {
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

// PageURL is the card page for name
func (c *Client) PageURL(name string) string {
	return fmt.Sprintf("%s/cards/%s.json", c.baseURL, domain.Slug(name))
}

// FetchSimilar returns recommendations for name from cache or EDHREC.
// A successful fetch is cached even when it lists nothing.
func (c *Client) FetchSimilar(ctx context.Context, name string) ([]domain.SimilarCard, error) {
	if cards, ok := c.cache.Get(name); ok {
		c.logger.Debug("similar cache hit", zap.String("name", name))
		return cards, nil
	}

	var page cardPage
	if err := httpfetch.GetJSON(ctx, c.fetcher, c.PageURL(name), &page); err != nil {
		return nil, httpfetch.Upstream("get similar cards", name, err)
	}

	cards := make([]domain.SimilarCard, 0, len(page.Similar))
	for _, s := range page.Similar {
		if s.Name == "" {
			continue
		}
		card := domain.SimilarCard{
			Name:          s.Name,
			ColorIdentity: s.ColorIdentity,
			CMC:           s.CMC,
			Type:          s.PrimaryType,
		}
		if card.ColorIdentity == nil {
			card.ColorIdentity = []string{}
		}
		if len(s.ImageURIs) > 0 {
			card.ImageURIs = &domain.SimilarImages{
				Normal:  s.ImageURIs[0].Normal,
				ArtCrop: s.ImageURIs[0].ArtCrop,
			}
		}
		cards = append(cards, card)
	}

	c.cache.Put(name, cards)
	return cards, nil
}

// SimilarCards is FetchSimilar with failures collapsed to an empty list
func (c *Client) SimilarCards(ctx context.Context, name string) []domain.SimilarCard {
	cards, err := c.FetchSimilar(ctx, name)
	if err != nil {
		c.logger.Warn("similar cards unavailable", zap.String("name", name), zap.Error(err))
		return []domain.SimilarCard{}
	}
	return cards
}
