package domain

import "errors"

// Sentinel errors for operation outcomes. All failures are converted
// to one of these at the operation boundary and matched with errors.Is.
var (
	// ErrValidation marks drafts that must not be persisted
	// (empty title, invalid URL, blank category name, unknown enum value).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks operations referencing an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProtectedCategory is returned when deleting the reserved
	// default category.
	ErrProtectedCategory = errors.New("default category cannot be deleted")

	// ErrDuplicateCategory is returned when a new category name
	// slugifies to an id that already exists.
	ErrDuplicateCategory = errors.New("category id already exists")
)
