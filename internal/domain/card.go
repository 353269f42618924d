package domain

import "time"

// Card is the shaped view of a card returned by the tools and stored in the card cache.
// Rulings and SimilarCards are enrichment and are never part of the cached form.
// They are nil when not requested and non-nil (possibly empty) when requested.
type Card struct {
	Name         string            `json:"name"`
	ManaCost     string            `json:"mana_cost,omitempty"`
	TypeLine     string            `json:"type_line"`
	OracleText   string            `json:"oracle_text,omitempty"`
	Power        string            `json:"power,omitempty"`
	Toughness    string            `json:"toughness,omitempty"`
	Colors       []string          `json:"colors,omitempty"`
	Legalities   map[string]string `json:"legalities,omitempty"`
	SetName      string            `json:"set_name,omitempty"`
	Rarity       string            `json:"rarity,omitempty"`
	RulingsURI   string            `json:"rulings_uri,omitempty"`
	ImageURIs    *CardImages       `json:"image_uris,omitempty"`
	CMC          float64           `json:"cmc"`
	Keywords     []string          `json:"keywords,omitempty"`
	Rulings      []Ruling          `json:"rulings,omitzero"`
	SimilarCards []SimilarCard     `json:"similar_cards,omitzero"`
}

// CardImages holds the two image sizes we surface
type CardImages struct {
	Small  string `json:"small,omitempty"`
	Normal string `json:"normal,omitempty"`
}

// Base returns a copy of the card without enrichment lists
func (c Card) Base() Card {
	c.Rulings = nil
	c.SimilarCards = nil
	return c
}

// Ruling is a single flattened ruling entry
type Ruling struct {
	OracleID string `json:"oracle_id"`
	Source   string `json:"source"`
	Comment  string `json:"comment"`
}

// SimilarCard is a recommendation entry. Order is the upstream order.
type SimilarCard struct {
	Name          string         `json:"name"`
	ColorIdentity []string       `json:"color_identity"`
	CMC           float64        `json:"cmc"`
	Type          string         `json:"type,omitempty"`
	ImageURIs     *SimilarImages `json:"image_uris,omitempty"`
}

// SimilarImages holds the first image entry of a recommendation
type SimilarImages struct {
	Normal  string `json:"normal,omitempty"`
	ArtCrop string `json:"art_crop,omitempty"`
}

// CachedSimilarCards is the on-disk envelope for similar-card lookups
type CachedSimilarCards struct {
	Cards     []SimilarCard `json:"cards"`
	Timestamp time.Time     `json:"timestamp"`
}
