package table

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jask/orderdesk/internal/orders"
)

// Filter returns the rows matching query, in input order. An empty query matches everything.
func Filter(rows []orders.DisplayOrder, query string) []orders.DisplayOrder {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]orders.DisplayOrder, 0, len(rows))
	for _, r := range rows {
		if Matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r contains query in any shown field, or whether a word of
// the customer name is a close misspelling of it.
func Matches(r orders.DisplayOrder, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	fields := []string{
		strconv.FormatInt(r.OrderNumber, 10),
		r.CustomerName,
		r.CustomerAddress,
		r.OrderValue.String(),
		r.OrderDate,
		r.ShipDate,
		r.Status,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	budget := utf8.RuneCountInString(q) / 4
	if budget == 0 {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(r.CustomerName)) {
		if levenshtein.ComputeDistance(word, q) <= budget {
			return true
		}
	}
	return false
}
