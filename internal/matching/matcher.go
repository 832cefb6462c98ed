// Package matching resolves user-supplied references to boards, lists
// and cards. A reference is either an id or a title.
package matching

import "strings"

// Matcher extracts the id and title of an item.
type Matcher[T any] struct {
	ID    func(T) string
	Title func(T) string
}

// Find returns the item whose id equals ref. Without an id match it
// returns every item whose title equals ref, ignoring case and
// surrounding whitespace. Ids always win so a title that looks like an
// id cannot shadow the entity that owns the id.
func (m Matcher[T]) Find(items []T, ref string) []T {
	for _, item := range items {
		if m.ID(item) == ref {
			return []T{item}
		}
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	var found []T
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(m.Title(item)), ref) {
			found = append(found, item)
		}
	}
	return found
}

// IDs returns the ids of items, in order.
func (m Matcher[T]) IDs(items []T) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = m.ID(item)
	}
	return ids
}
