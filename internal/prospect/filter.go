package prospect

import (
	"fmt"
	"strings"

	"github.com/hotprospects/hotprospects/internal/database/repository"
)

// Filter selects which prospects a list shows.
type Filter int

const (
	FilterNone Filter = iota
	FilterContacted
	FilterUncontacted
)

// Predicate reports whether a prospect belongs to a derived view.
type Predicate func(repository.Prospect) bool

// Filters lists every filter in tab order.
func Filters() []Filter {
	return []Filter{FilterNone, FilterContacted, FilterUncontacted}
}

// Title is the heading shown above a filtered list.
func (f Filter) Title() string {
	switch f {
	case FilterContacted:
		return "Contacted people"
	case FilterUncontacted:
		return "Uncontacted people"
	default:
		return "Everyone"
	}
}

// Predicate returns the membership test for f. FilterNone matches everything.
func (f Filter) Predicate() Predicate {
	switch f {
	case FilterContacted:
		return func(p repository.Prospect) bool { return p.IsContacted }
	case FilterUncontacted:
		return func(p repository.Prospect) bool { return !p.IsContacted }
	default:
		return func(repository.Prospect) bool { return true }
	}
}

// String is the name used on the command line and in URLs.
func (f Filter) String() string {
	switch f {
	case FilterContacted:
		return "contacted"
	case FilterUncontacted:
		return "uncontacted"
	default:
		return "everyone"
	}
}

// ParseFilter maps a command-line name to a Filter. The empty string is FilterNone.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "everyone", "all":
		return FilterNone, nil
	case "contacted":
		return FilterContacted, nil
	case "uncontacted":
		return FilterUncontacted, nil
	}
	return FilterNone, fmt.Errorf("unknown filter %q (want everyone, contacted or uncontacted)", s)
}

// And combines predicates; a nil predicate is skipped.
func And(preds ...Predicate) Predicate {
	return func(p repository.Prospect) bool {
		for _, pred := range preds {
			if pred != nil && !pred(p) {
				return false
			}
		}
		return true
	}
}

// Apply keeps the prospects matching pred, preserving order.
func Apply(list []repository.Prospect, pred Predicate) []repository.Prospect {
	out := make([]repository.Prospect, 0, len(list))
	for _, p := range list {
		if pred == nil || pred(p) {
			out = append(out, p)
		}
	}
	return out
}
