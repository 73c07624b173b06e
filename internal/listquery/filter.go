// server/internal/listquery/filter.go
package listquery

import (
	"strings"
)

// Matches reports whether term is a case-insensitive substring of any of the
// given display fields. An empty term matches everything, so list endpoints
// can pass the search query straight through.
func Matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// MatchesCategory reports whether value passes an optional equality filter on
// a categorical field. An empty filter accepts every value.
func MatchesCategory(filter, value string) bool {
	return filter == "" || filter == value
}
