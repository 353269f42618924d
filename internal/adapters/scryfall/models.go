package scryfall

import (
	"strings"

	"mtgmcp/internal/domain"
)

// card is the subset of a Scryfall card object we read
type card struct {
	Name       string            `json:"name"`
	ManaCost   string            `json:"mana_cost"`
	TypeLine   string            `json:"type_line"`
	OracleText string            `json:"oracle_text"`
	Power      string            `json:"power"`
	Toughness  string            `json:"toughness"`
	Colors     []string          `json:"colors"`
	Legalities map[string]string `json:"legalities"`
	SetName    string            `json:"set_name"`
	Rarity     string            `json:"rarity"`
	RulingsURI string            `json:"rulings_uri"`
	ImageURIs  *imageURIs        `json:"image_uris"`
	CMC        float64           `json:"cmc"`
	Keywords   []string          `json:"keywords"`
	CardFaces  []cardFace        `json:"card_faces"`
}

// cardFace is one face of a multi-faced card
type cardFace struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text"`
	Power      string     `json:"power"`
	Toughness  string     `json:"toughness"`
	Colors     []string   `json:"colors"`
	ImageURIs  *imageURIs `json:"image_uris"`
}

type imageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
}

// cardList is a page of search results
type cardList struct {
	TotalCards int    `json:"total_cards"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page"`
	Data       []card `json:"data"`
}

// rulingList is the response behind a card's rulings_uri
type rulingList struct {
	Data []struct {
		OracleID string `json:"oracle_id"`
		Source   string `json:"source"`
		Comment  string `json:"comment"`
	} `json:"data"`
}

// faceSeparator joins per-face text the way Scryfall prints split cards
const faceSeparator = "\n//\n"

// toDomain maps the fields we surface. Multi-faced cards carry text and
// images on their faces, so missing top-level values fall back to them.
func (c *card) toDomain() domain.Card {
	out := domain.Card{
		Name:       c.Name,
		ManaCost:   c.ManaCost,
		TypeLine:   c.TypeLine,
		OracleText: c.OracleText,
		Power:      c.Power,
		Toughness:  c.Toughness,
		Colors:     c.Colors,
		Legalities: c.Legalities,
		SetName:    c.SetName,
		Rarity:     c.Rarity,
		RulingsURI: c.RulingsURI,
		CMC:        c.CMC,
		Keywords:   c.Keywords,
	}

	images := c.ImageURIs
	if len(c.CardFaces) > 0 {
		front := c.CardFaces[0]
		if images == nil {
			images = front.ImageURIs
		}
		if out.OracleText == "" {
			texts := make([]string, 0, len(c.CardFaces))
			for _, f := range c.CardFaces {
				texts = append(texts, f.OracleText)
			}
			out.OracleText = strings.Join(texts, faceSeparator)
		}
		if out.ManaCost == "" {
			out.ManaCost = front.ManaCost
		}
		if out.Power == "" && out.Toughness == "" {
			out.Power, out.Toughness = front.Power, front.Toughness
		}
		if out.Colors == nil {
			out.Colors = front.Colors
		}
	}

	if images != nil {
		out.ImageURIs = &domain.CardImages{Small: images.Small, Normal: images.Normal}
	}
	return out
}
