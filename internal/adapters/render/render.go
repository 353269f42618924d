package render

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"mtgmcp/internal/adapters/render/styles"
	"mtgmcp/internal/domain"
)

// JSON writes v as indented JSON, matching what the MCP tools return
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Card writes a styled card block
func Card(w io.Writer, c domain.Card) {
	header := styles.ForColors(c.Colors).Render(c.Name)
	if c.ManaCost != "" {
		header += "  " + c.ManaCost
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, styles.Subtitle.Render(typeLine(c)))

	if c.OracleText != "" {
		fmt.Fprintln(w, styles.Oracle.Render(c.OracleText))
	}
	if c.SetName != "" {
		fmt.Fprintln(w, labelValue("Set", fmt.Sprintf("%s (%s)", c.SetName, c.Rarity)))
	}
	if legal := legalFormats(c.Legalities); len(legal) > 0 {
		fmt.Fprintln(w, labelValue("Legal", strings.Join(legal, ", ")))
	}
	if c.ImageURIs != nil && c.ImageURIs.Normal != "" {
		fmt.Fprintln(w, labelValue("Image", styles.MutedText.Render(c.ImageURIs.Normal)))
	}

	if len(c.Rulings) > 0 {
		fmt.Fprintln(w, styles.Section.Render("Rulings"))
		for _, r := range c.Rulings {
			fmt.Fprintf(w, "  • %s %s\n", r.Comment, styles.MutedText.Render("("+r.Source+")"))
		}
	}
	if len(c.SimilarCards) > 0 {
		fmt.Fprintln(w, styles.Section.Render("Similar cards"))
		SimilarCards(w, c.SimilarCards)
	}
}

// SearchResult writes a one-line summary per card
func SearchResult(w io.Writer, r *domain.SearchResult) {
	if len(r.Data) == 0 {
		fmt.Fprintln(w, styles.MutedText.Render("No cards found"))
		return
	}

	for _, c := range r.Data {
		fmt.Fprintf(w, "%s  %s  %s\n", styles.ForColors(c.Colors).Render(c.Name), c.ManaCost, styles.MutedText.Render(c.TypeLine))
	}

	summary := fmt.Sprintf("%d of %d cards", len(r.Data), r.TotalCards)
	if r.HasMore {
		summary += ", more available"
	}
	fmt.Fprintln(w, styles.Subtitle.Render(summary))
}

// Deck writes the deck header and its cards grouped by first category
func Deck(w io.Writer, d *domain.Deck) {
	fmt.Fprintln(w, styles.Title.Render(d.Name))
	meta := []string{d.Format, fmt.Sprintf("%d cards", d.TotalQuantity())}
	if d.Owner != "" {
		meta = append(meta, "by "+d.Owner)
	}
	fmt.Fprintln(w, styles.Subtitle.Render(strings.Join(meta, " · ")))

	groups, order := groupByCategory(d.Cards)
	for _, name := range order {
		fmt.Fprintln(w, styles.Section.Render(name))
		for _, dc := range groups[name] {
			fmt.Fprintf(w, "  %2d  %s  %s\n", dc.Quantity, styles.ForColors(dc.Card.Colors).Render(dc.Card.Name), styles.MutedText.Render(dc.Card.TypeLine))
		}
	}
}

// DeckList is the plain-text "quantity name" list most deck tools import
func DeckList(d *domain.Deck) string {
	var sb strings.Builder
	for _, dc := range d.Cards {
		if !included(dc) {
			continue
		}
		sb.WriteString(strconv.Itoa(dc.Quantity))
		sb.WriteByte(' ')
		sb.WriteString(dc.Card.Name)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SimilarCards writes one line per recommendation
func SimilarCards(w io.Writer, cards []domain.SimilarCard) {
	if len(cards) == 0 {
		fmt.Fprintln(w, styles.MutedText.Render("No similar cards"))
		return
	}
	for _, c := range cards {
		fmt.Fprintf(w, "  %s  %s  %s\n",
			styles.ForColors(c.ColorIdentity).Render(c.Name),
			styles.MutedText.Render(c.Type),
			styles.MutedText.Render("cmc "+strconv.FormatFloat(c.CMC, 'f', -1, 64)),
		)
	}
}

// Error writes a styled error line
func Error(w io.Writer, err error) {
	fmt.Fprintln(w, styles.ErrorMsg.Render("Error: "+err.Error()))
}

// Done writes a styled success line
func Done(w io.Writer, msg string) {
	fmt.Fprintln(w, styles.Success.Render(msg))
}

func labelValue(label, value string) string {
	return fmt.Sprintf("%s %s", styles.Label.Render(label+":"), value)
}

func typeLine(c domain.Card) string {
	if c.Power != "" || c.Toughness != "" {
		return fmt.Sprintf("%s  %s/%s", c.TypeLine, c.Power, c.Toughness)
	}
	return c.TypeLine
}

func legalFormats(legalities map[string]string) []string {
	var out []string
	for _, format := range slices.Sorted(maps.Keys(legalities)) {
		if legalities[format] == "legal" {
			out = append(out, format)
		}
	}
	return out
}

// groupByCategory buckets cards under their first category, keeping first-seen order
func groupByCategory(cards []domain.DeckCard) (map[string][]domain.DeckCard, []string) {
	groups := make(map[string][]domain.DeckCard)
	var order []string
	for _, dc := range cards {
		name := domain.UnknownCategory
		if len(dc.Categories) > 0 {
			name = dc.Categories[0].Name
		}
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], dc)
	}
	return groups, order
}

// included reports whether every category the card sits in counts toward the deck
func included(dc domain.DeckCard) bool {
	for _, c := range dc.Categories {
		if !c.IncludedInDeck {
			return false
		}
	}
	return true
}
