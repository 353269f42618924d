package domain

import "slices"

const (
	DefaultMaxResults = 25
	MaxResultsCeiling = 175
	DefaultOrder      = "name"
)

// UniqueMode controls how the card database collapses duplicate printings
type UniqueMode string

const (
	UniqueCards  UniqueMode = "cards"
	UniqueArt    UniqueMode = "art"
	UniquePrints UniqueMode = "prints"
)

// UniqueModes lists the accepted duplicate-handling modes
var UniqueModes = []string{string(UniqueCards), string(UniqueArt), string(UniquePrints)}

// SortOrders lists the sort orders accepted by the card database
var SortOrders = []string{
	"name", "set", "released", "rarity", "color", "usd", "tix", "eur",
	"cmc", "power", "toughness", "edhrec", "penny", "artist", "review",
}

// IsUniqueMode reports whether s names a duplicate-handling mode
func IsUniqueMode(s string) bool {
	return slices.Contains(UniqueModes, s)
}

// IsSortOrder reports whether s names a supported sort order
func IsSortOrder(s string) bool {
	return slices.Contains(SortOrders, s)
}

// SearchOptions are the caller's search parameters
type SearchOptions struct {
	Query         string
	MaxResults    int
	Unique        UniqueMode
	Order         string
	IncludeExtras bool
}

// SearchResult is the shaped search envelope
type SearchResult struct {
	TotalCards int    `json:"total_cards"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page,omitempty"`
	Data       []Card `json:"data"`
}

// EmptySearchResult is what a search with no matches returns
func EmptySearchResult() *SearchResult {
	return &SearchResult{Data: []Card{}}
}
