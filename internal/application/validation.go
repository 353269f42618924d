package application

import (
	"fmt"
	"strings"

	"mtgmcp/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateNames checks that a list of card names is non-empty and has no blank entries
func ValidateNames(fieldName string, names []string) error {
	if len(names) == 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be a non-empty list", formatFieldName(fieldName)),
		}
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("%s[%d] is empty", fieldName, i),
			}
		}
	}
	return nil
}

// ValidateSearch normalizes search options in place: defaults are filled in,
// max results above the ceiling are clamped, and unknown vocab is rejected.
func ValidateSearch(opts *domain.SearchOptions) error {
	if err := ValidateRequired("query", opts.Query); err != nil {
		return err
	}

	switch {
	case opts.MaxResults == 0:
		opts.MaxResults = domain.DefaultMaxResults
	case opts.MaxResults < 0:
		return &ValidationError{Field: "max_results", Message: "max results must be positive"}
	case opts.MaxResults > domain.MaxResultsCeiling:
		opts.MaxResults = domain.MaxResultsCeiling
	}

	if opts.Unique == "" {
		opts.Unique = domain.UniqueCards
	} else if !domain.IsUniqueMode(string(opts.Unique)) {
		return &ValidationError{
			Field:   "unique",
			Message: fmt.Sprintf("unique must be one of %s, got: %s", strings.Join(domain.UniqueModes, ", "), opts.Unique),
		}
	}

	if opts.Order == "" {
		opts.Order = domain.DefaultOrder
	} else if !domain.IsSortOrder(opts.Order) {
		return &ValidationError{
			Field:   "order",
			Message: fmt.Sprintf("unsupported sort order: %s", opts.Order),
		}
	}

	return nil
}

// formatFieldName converts tool argument names to readable words
// for error messages (e.g., "deck_id" -> "deck ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"card_names":  "card names",
		"query":       "query",
		"deck_id":     "deck ID",
		"name":        "card name",
		"max_results": "max results",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
