package trivia

import "sort"

// categoryIDs maps the supported category ids to the provider's numeric
// category codes.
var categoryIDs = map[string]int{
	"general":   9,
	"film":      11,
	"music":     12,
	"science":   17,
	"geography": 22,
	"history":   23,
}

// Categories returns the supported category ids in sorted order.
func Categories() []string {
	categories := make([]string, 0, len(categoryIDs))
	for category := range categoryIDs {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
