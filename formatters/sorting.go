package formatters

import (
	"slices"
	"strings"

	"github.com/flanksource/svgpreview/api"
)

// SortField extracts the string a card is ordered by.
type SortField func(Card) string

// sortFields maps every sortable key to its field.
var sortFields = map[api.SortBy]SortField{
	api.SortName:      func(c Card) string { return c.Name },
	api.SortCodepoint: func(c Card) string { return c.Code },
}

// SortCards orders cards in place by the key. Ties keep document order in
// both directions; SortNone leaves the slice untouched.
func SortCards(cards []Card, key api.SortKey) {
	field, ok := sortFields[key.By]
	if !ok {
		return
	}
	slices.SortStableFunc(cards, func(a, b Card) int {
		cmp := compareValues(field(a), field(b))
		if key.Order == api.Descending {
			return -cmp
		}
		return cmp
	})
}

// compareValues is a plain lexicographic comparison, so "10" sorts before "9".
func compareValues(a, b string) int {
	return strings.Compare(a, b)
}
