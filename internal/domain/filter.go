package domain

import "strings"

// Filter returns the visible subset of bookmarks for the current
// search term, category selector and required tags, preserving the
// collection's order.
//
// A bookmark is visible when all three match:
//   - query: case-insensitive substring of title, description or any tag
//     (empty query matches everything)
//   - category: CategoryAll matches everything, otherwise exact id match
//   - tags: every required tag is present (conjunctive); empty set matches
func Filter(bookmarks []Bookmark, query, categoryID string, requiredTags []string) []Bookmark {
	query = strings.ToLower(query)

	out := make([]Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if !matchesQuery(b, query) {
			continue
		}
		if categoryID != CategoryAll && b.CategoryID != categoryID {
			continue
		}
		if !containsAll(b.Tags, requiredTags) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesQuery(b Bookmark, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Description), query) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func containsAll(tags, required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AllTags returns the deduplicated union of every bookmark's tags in
// first-seen order. It feeds the tag-filter selector.
func AllTags(bookmarks []Bookmark) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, b := range bookmarks {
		for _, tag := range b.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
