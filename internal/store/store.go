// Package store defines the persistent key-value capability the
// repository depends on. Each record (bookmarks, categories, display
// settings) is written as a single atomic value under its key.
package store

import "context"

// Record keys. The persisted layout is three independent records.
const (
	KeyBookmarks  = "bookmarks"
	KeyCategories = "categories"
	KeySettings   = "displaySettings"
)

// KV is the store contract. Implementations must apply writes to a
// given key in the order they were issued.
type KV interface {
	// Load fetches the requested keys. Absent keys are simply
	// missing from the returned map; that is not an error.
	Load(ctx context.Context, keys ...string) (map[string][]byte, error)

	// Save writes one record as a single atomic value. A returned
	// error means the previous value remains authoritative.
	Save(ctx context.Context, key string, value []byte) error
}
