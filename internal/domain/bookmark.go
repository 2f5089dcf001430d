package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/gosimple/slug"
)

// DefaultCategoryID is the reserved category every install carries.
// It can never be deleted; bookmarks from deleted categories are
// reassigned to it.
const DefaultCategoryID = "default"

// CategoryAll is the filter selector that matches every category.
// It is never a real category id.
const CategoryAll = "all"

// Bookmark represents a saved link on the dashboard.
//
// JSON field names match the persisted record layout, so a stored
// collection round-trips unchanged.
type Bookmark struct {
	// ID is the canonical unique identifier, assigned at creation
	// and never reused.
	ID string `json:"id"`

	// Title is the display name. Required, non-empty for save.
	Title string `json:"title"`

	// URL is the bookmark target. Must be an absolute URL.
	URL string `json:"url"`

	// Description is optional free text.
	Description string `json:"description"`

	// ImageURL points to a preview image. Defaults to a favicon
	// service URL derived from the bookmark's hostname.
	ImageURL string `json:"imageUrl"`

	// Tags is an ordered sequence with duplicates suppressed.
	Tags []string `json:"tags"`

	// CategoryID references an existing Category. Always valid:
	// deleting a category reassigns its bookmarks to the default.
	CategoryID string `json:"categoryId"`
}

// Category groups bookmarks. Its ID is the slug of its name at
// creation time and never changes afterwards.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewID returns a fresh opaque bookmark identifier.
func NewID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// CategoryIDFromName derives a category id from its display name.
// Example: "Side Projects" -> "side-projects".
func CategoryIDFromName(name string) string {
	return slug.Make(name)
}

// ValidateBookmarkDraft checks the fields a draft must carry before
// it can be persisted: a non-empty title and a syntactically valid
// absolute URL.
func ValidateBookmarkDraft(title, rawURL string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	return validateURL(rawURL)
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: invalid url %q: %v", ErrValidation, rawURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: url %q is not absolute", ErrValidation, rawURL)
	}
	return nil
}

// FaviconURL returns the deterministic fallback preview image for a
// bookmark URL, templated from its hostname.
func FaviconURL(rawURL string) string {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Hostname()
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=128", host)
}

// NormalizeTags trims whitespace, drops empty entries and suppresses
// duplicates while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
