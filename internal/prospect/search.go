package prospect

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/hotprospects/hotprospects/internal/database/repository"
)

const maxTypoDistance = 2

// Search matches prospects whose name or email contains query, or whose name
// has a word within a couple of typos of it. An empty query matches all.
func Search(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(p repository.Prospect) bool {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, q) || strings.Contains(strings.ToLower(p.EmailAddress), q) {
			return true
		}
		if len(q) <= maxTypoDistance {
			return false
		}
		for _, word := range strings.Fields(name) {
			if levenshtein.ComputeDistance(word, q) <= maxTypoDistance {
				return true
			}
		}
		return false
	}
}
