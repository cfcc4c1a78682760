package route

import (
	"strings"

	"github.com/jmorrow/granola-flow/internal/config"
)

// Match assigns a meeting to a client folder by keyword lookup. The search
// text is the lowercased title plus the people title when one is present.
// Routes are checked in configured order and the first keyword hit wins;
// matching is plain substring, no word boundaries.
func Match(routes []config.Route, title, peopleTitle string) (string, bool) {
	searchText := strings.ToLower(title)
	if peopleTitle != "" {
		searchText += " " + strings.ToLower(peopleTitle)
	}

	for _, r := range routes {
		for _, kw := range r.Keywords {
			if strings.Contains(searchText, kw) {
				return r.Folder, true
			}
		}
	}
	return "", false
}
