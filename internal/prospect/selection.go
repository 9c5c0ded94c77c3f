package prospect

import "sort"

// Selection is the set of row ids a list currently has selected.
// The zero value is an empty selection ready to use.
type Selection struct {
	ids map[string]struct{}
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) IsEmpty() bool { return len(s.ids) == 0 }

func (s *Selection) Clear() { s.ids = nil }

// IDs returns the selected ids sorted.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Prune drops ids that are not in keep.
func (s *Selection) Prune(keep []string) {
	if len(s.ids) == 0 {
		return
	}
	present := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		present[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := present[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// Equal reports whether both selections hold the same ids.
func (s *Selection) Equal(other *Selection) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
