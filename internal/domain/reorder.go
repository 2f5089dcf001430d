package domain

import "fmt"

// Reorder applies a completed drag gesture to the full ordered
// collection: the bookmark at sourceIndex is removed, reassigned to
// destCategoryID and reinserted at destIndex.
//
// The collection's order encodes both category membership and
// intra-category display order, so moving one bookmark never perturbs
// the relative order of the others. Dropping a bookmark back onto its
// own position yields an identical collection.
//
// The input slice is not mutated; a new collection is returned.
func Reorder(bookmarks []Bookmark, sourceIndex int, destCategoryID string, destIndex int) ([]Bookmark, error) {
	if sourceIndex < 0 || sourceIndex >= len(bookmarks) {
		return nil, fmt.Errorf("%w: source index %d out of range", ErrValidation, sourceIndex)
	}
	if destIndex < 0 || destIndex >= len(bookmarks) {
		return nil, fmt.Errorf("%w: destination index %d out of range", ErrValidation, destIndex)
	}

	moved := bookmarks[sourceIndex]
	moved.CategoryID = destCategoryID

	out := make([]Bookmark, 0, len(bookmarks))
	out = append(out, bookmarks[:sourceIndex]...)
	out = append(out, bookmarks[sourceIndex+1:]...)

	out = append(out, Bookmark{})
	copy(out[destIndex+1:], out[destIndex:])
	out[destIndex] = moved

	return out, nil
}
