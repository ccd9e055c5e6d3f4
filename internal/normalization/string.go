package normalization

import (
	"strings"
)

// ParseInputString is used for emails and enum-style option values, which
// are compared case-insensitively everywhere.
func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// TrimInput is used for free-text fields (notes, trigger labels) where the
// user's casing should survive.
func TrimInput(input string) string {
	return strings.TrimSpace(input)
}
