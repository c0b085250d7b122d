// Package tags turns free-text tag input into the canonical tag sequence
// stored on a record.
package tags

import (
	"strings"
	"unicode"
)

// separator reports whether r splits tag tokens. Full-width comma and
// semicolon are included so CJK keyboard input works unchanged.
func separator(r rune) bool {
	switch r {
	case ',', ';', '，', '；':
		return true
	}
	return unicode.IsSpace(r)
}

// Normalize splits input into tags, trims them, drops empties, and removes
// case-insensitive duplicates while keeping the first-seen casing and order.
// Empty input yields an empty sequence.
func Normalize(input string) []string {
	tokens := strings.FieldsFunc(input, separator)

	result := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, token)
	}
	return result
}

// Join renders tags as the canonical display string.
func Join(tags []string) string {
	return strings.Join(tags, ", ")
}

// Cap truncates tags to at most limit entries. A limit of zero or less
// disables the cap.
func Cap(tags []string, limit int) []string {
	if limit > 0 && len(tags) > limit {
		return tags[:limit]
	}
	return tags
}
