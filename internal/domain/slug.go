package domain

import (
	"strings"
	"unicode"
)

// Slug converts a card name to the recommendation service's page key:
// lowercase, whitespace runs collapsed to a single hyphen, and anything
// outside [a-z0-9-] dropped. Slug(Slug(x)) == Slug(x).
func Slug(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))

	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
