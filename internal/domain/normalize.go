package domain

import (
	"strings"
)

// NormalizeName prepares an item name for storage:
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into one space
//
// Case is preserved; use NameKey for comparisons.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NameKey returns the case-insensitive comparison key of an item name.
func NameKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}
