package domain

// UnknownCategory is used when a card references a category the deck does not declare
const UnknownCategory = "Unknown Category"

// UnknownFormat is the label for unmapped deck format codes
const UnknownFormat = "Unknown"

// Deck is a resolved deck with full card data for every unique card
type Deck struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Format      string     `json:"format"`
	Owner       string     `json:"owner,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
	Cards       []DeckCard `json:"cards"`
}

// DeckCard is one unique card in a deck
type DeckCard struct {
	Card       Card                 `json:"card"`
	Quantity   int                  `json:"quantity"`
	Categories []CategoryMembership `json:"categories"`
}

// CategoryMembership records which deck category a card sits in
type CategoryMembership struct {
	Name           string `json:"name"`
	IncludedInDeck bool   `json:"included_in_deck"`
}

// DefaultCategory is the fallback membership for undeclared category names
func DefaultCategory() CategoryMembership {
	return CategoryMembership{Name: UnknownCategory, IncludedInDeck: true}
}

// deckFormats maps the deck builder's numeric format codes to labels.
// The upstream mapping is not documented; these match the codes observed in public decks.
var deckFormats = map[int]string{
	1:  "Standard",
	2:  "Modern",
	3:  "Commander",
	4:  "Legacy",
	5:  "Vintage",
	6:  "Pauper",
	7:  "Brawl",
	8:  "Pioneer",
	9:  "Historic",
	10: "Penny Dreadful",
	11: "Oathbreaker",
	12: "Explorer",
}

// FormatLabel returns the human label for a deck format code
func FormatLabel(code int) string {
	if name, ok := deckFormats[code]; ok {
		return name
	}
	return UnknownFormat
}

// TotalQuantity sums the quantities of every card in the deck
func (d *Deck) TotalQuantity() int {
	total := 0
	for _, c := range d.Cards {
		total += c.Quantity
	}
	return total
}
