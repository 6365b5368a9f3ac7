package menu

import (
	"strings"

	"MenuImage_API/internal/models"
)

// DescriptionSentinel fills the description of items the extraction
// collaborator returned without one
const DescriptionSentinel = "null"

// dedupeKey identifies a menu item for duplicate detection
type dedupeKey struct {
	name  string
	price string
}

// ValidateMenuItems filters raw extracted menu items into clean ones.
// It is a total function: items missing a name or price are dropped,
// duplicates keyed by (lowercased trimmed name, trimmed price) are
// dropped, the keyword falls back to the name when absent, and missing
// descriptions get the sentinel value. Input order is preserved.
func ValidateMenuItems(items []models.MenuItem) []models.MenuItem {
	valid := make([]models.MenuItem, 0, len(items))
	seen := make(map[dedupeKey]struct{}, len(items))

	for _, item := range items {
		if item.Name == "" || item.Price == "" {
			continue
		}

		key := dedupeKey{
			name:  strings.ToLower(strings.TrimSpace(item.Name)),
			price: strings.TrimSpace(item.Price),
		}
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}

		if item.Keyword == "" {
			item.Keyword = item.Name
		}
		if item.Description == "" {
			item.Description = DescriptionSentinel
		}

		valid = append(valid, item)
	}

	return valid
}
