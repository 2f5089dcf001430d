// Package repo owns the canonical in-memory collections of bookmarks,
// categories and display settings. Every mutation validates its input,
// computes the next snapshot, persists it through the store and only
// then swaps the visible state. A failed save leaves the previous
// snapshot authoritative.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store"
)

// Repository funnels all mutations so persisted state and rendered
// state never diverge.
type Repository struct {
	kv   store.KV
	log  logger.Logger
	seed []domain.Category

	// writeMu serializes mutations end to end. This is the per-key
	// write queue: an older in-flight save can never clobber a newer
	// one because only one save is ever in flight.
	writeMu sync.Mutex

	// mu guards the visible snapshot for readers.
	mu         sync.RWMutex
	bookmarks  []domain.Bookmark
	categories []domain.Category
	settings   domain.DisplaySettings
}

// New creates a repository over the given store. seed is the category
// list installed on first run; it must contain the default category.
func New(kv store.KV, seed []domain.Category, log logger.Logger) *Repository {
	return &Repository{
		kv:   kv,
		log:  log,
		seed: seed,
	}
}

// Load reads the persisted records into memory, seeding defaults on
// first run and repairing any bookmark whose category no longer
// exists.
func (r *Repository) Load(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	records, err := r.kv.Load(ctx, store.KeyBookmarks, store.KeyCategories, store.KeySettings)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	bookmarks := []domain.Bookmark{}
	if data, ok := records[store.KeyBookmarks]; ok {
		if err := json.Unmarshal(data, &bookmarks); err != nil {
			return fmt.Errorf("failed to decode bookmarks record: %w", err)
		}
	}

	var categories []domain.Category
	if data, ok := records[store.KeyCategories]; ok {
		if err := json.Unmarshal(data, &categories); err != nil {
			return fmt.Errorf("failed to decode categories record: %w", err)
		}
	}

	settings := domain.DefaultDisplaySettings()
	if data, ok := records[store.KeySettings]; ok {
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("failed to decode settings record: %w", err)
		}
	}

	seeded := false
	if categories == nil {
		categories = append([]domain.Category{}, r.seed...)
		seeded = true
		r.log.Info("first run, seeding categories",
			logger.Int("count", len(categories)))
	}

	// The default category must always exist.
	if !hasCategory(categories, domain.DefaultCategoryID) {
		categories = append([]domain.Category{{ID: domain.DefaultCategoryID, Name: "General"}}, categories...)
		seeded = true
	}

	// Repair orphans: a bookmark must never reference a missing
	// category.
	repaired := false
	for i, b := range bookmarks {
		if !hasCategory(categories, b.CategoryID) {
			bookmarks[i].CategoryID = domain.DefaultCategoryID
			repaired = true
		}
	}
	if repaired {
		r.log.Warn("reassigned orphaned bookmarks to default category")
		if err := r.persist(ctx, store.KeyBookmarks, bookmarks); err != nil {
			return err
		}
	}
	if seeded {
		if err := r.persist(ctx, store.KeyCategories, categories); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.bookmarks = bookmarks
	r.categories = categories
	r.settings = settings
	r.mu.Unlock()

	r.log.Info("repository loaded",
		logger.Int("bookmarks", len(bookmarks)),
		logger.Int("categories", len(categories)))
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Read accessors (snapshot copies)
// ─────────────────────────────────────────────────────────────────

// Bookmarks returns a copy of the full ordered bookmark collection.
func (r *Repository) Bookmarks() []domain.Bookmark {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Bookmark{}, r.bookmarks...)
}

// Categories returns a copy of the category collection.
func (r *Repository) Categories() []domain.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Category{}, r.categories...)
}

// Settings returns the current display preferences.
func (r *Repository) Settings() domain.DisplaySettings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// Tags returns the deduplicated union of all bookmark tags.
func (r *Repository) Tags() []string {
	return domain.AllTags(r.Bookmarks())
}

// ─────────────────────────────────────────────────────────────────
// Bookmark operations
// ─────────────────────────────────────────────────────────────────

// Add validates the draft, assigns identity and defaults, appends it
// to the collection and persists. The stored bookmark is returned.
func (r *Repository) Add(ctx context.Context, draft domain.Bookmark) (domain.Bookmark, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := domain.ValidateBookmarkDraft(draft.Title, draft.URL); err != nil {
		return domain.Bookmark{}, err
	}

	b := draft
	b.ID = domain.NewID()
	if b.CategoryID == "" {
		b.CategoryID = domain.DefaultCategoryID
	}
	if !hasCategory(r.Categories(), b.CategoryID) {
		return domain.Bookmark{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, b.CategoryID)
	}
	if b.ImageURL == "" {
		b.ImageURL = domain.FaviconURL(b.URL)
	}
	b.Tags = domain.NormalizeTags(b.Tags)

	next := append(r.Bookmarks(), b)
	if err := r.persist(ctx, store.KeyBookmarks, next); err != nil {
		return domain.Bookmark{}, err
	}
	r.swapBookmarks(next)

	r.log.Info("bookmark added",
		logger.String("id", b.ID),
		logger.String("url", b.URL))
	return b, nil
}

// Update replaces the bookmark's fields with the draft's. An empty
// draft image URL keeps the existing one. Drafts with an empty title
// or invalid URL are rejected without persistence.
func (r *Repository) Update(ctx context.Context, id string, draft domain.Bookmark) (domain.Bookmark, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := domain.ValidateBookmarkDraft(draft.Title, draft.URL); err != nil {
		return domain.Bookmark{}, err
	}

	next := r.Bookmarks()
	idx := indexOf(next, id)
	if idx < 0 {
		return domain.Bookmark{}, fmt.Errorf("%w: bookmark %s", domain.ErrNotFound, id)
	}

	b := next[idx]
	b.Title = draft.Title
	b.URL = draft.URL
	b.Description = draft.Description
	if draft.ImageURL != "" {
		b.ImageURL = draft.ImageURL
	}
	b.Tags = domain.NormalizeTags(draft.Tags)
	b.CategoryID = draft.CategoryID
	if b.CategoryID == "" {
		b.CategoryID = domain.DefaultCategoryID
	}
	if !hasCategory(r.Categories(), b.CategoryID) {
		return domain.Bookmark{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, b.CategoryID)
	}
	next[idx] = b

	if err := r.persist(ctx, store.KeyBookmarks, next); err != nil {
		return domain.Bookmark{}, err
	}
	r.swapBookmarks(next)

	r.log.Info("bookmark updated", logger.String("id", id))
	return b, nil
}

// Delete removes the bookmark if present. Deleting an unknown id is a
// no-op and triggers no persistence.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current := r.Bookmarks()
	idx := indexOf(current, id)
	if idx < 0 {
		return nil
	}

	next := append(current[:idx], current[idx+1:]...)
	if err := r.persist(ctx, store.KeyBookmarks, next); err != nil {
		return err
	}
	r.swapBookmarks(next)

	r.log.Info("bookmark deleted", logger.String("id", id))
	return nil
}

// Reorder applies a completed drag gesture to the full collection and
// persists the resulting order as one write. destCategoryID must be
// an existing category.
func (r *Repository) Reorder(ctx context.Context, sourceIndex int, destCategoryID string, destIndex int) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if !hasCategory(r.Categories(), destCategoryID) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, destCategoryID)
	}

	next, err := domain.Reorder(r.Bookmarks(), sourceIndex, destCategoryID, destIndex)
	if err != nil {
		return err
	}

	if err := r.persist(ctx, store.KeyBookmarks, next); err != nil {
		return err
	}
	r.swapBookmarks(next)
	return nil
}

// ImportBatch appends the given drafts in one persisted write,
// skipping entries whose URL already exists in the collection or is
// not a valid absolute URL. It returns the number of bookmarks added;
// zero additions perform no write.
func (r *Repository) ImportBatch(ctx context.Context, drafts []domain.Bookmark) (int, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current := r.Bookmarks()
	existing := make(map[string]bool, len(current))
	for _, b := range current {
		existing[b.URL] = true
	}

	next := current
	added := 0
	for _, draft := range drafts {
		// Exact string equality, no URL normalization.
		if existing[draft.URL] {
			continue
		}
		if err := domain.ValidateBookmarkDraft(draft.Title, draft.URL); err != nil {
			r.log.Debug("skipping invalid import entry",
				logger.String("url", draft.URL),
				logger.Error(err))
			continue
		}

		b := draft
		b.ID = domain.NewID()
		if b.CategoryID == "" {
			b.CategoryID = domain.DefaultCategoryID
		}
		if b.ImageURL == "" {
			b.ImageURL = domain.FaviconURL(b.URL)
		}
		b.Tags = domain.NormalizeTags(b.Tags)

		existing[b.URL] = true
		next = append(next, b)
		added++
	}

	if added == 0 {
		return 0, nil
	}

	if err := r.persist(ctx, store.KeyBookmarks, next); err != nil {
		return 0, err
	}
	r.swapBookmarks(next)

	r.log.Info("imported bookmarks", logger.Int("count", added))
	return added, nil
}

// ─────────────────────────────────────────────────────────────────
// Category operations
// ─────────────────────────────────────────────────────────────────

// AddCategory creates a category whose id is the slug of its name.
// Blank names and colliding ids are rejected.
func (r *Repository) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name must not be blank", domain.ErrValidation)
	}

	id := domain.CategoryIDFromName(name)
	if id == "" {
		return domain.Category{}, fmt.Errorf("%w: category name %q yields an empty id", domain.ErrValidation, name)
	}
	if hasCategory(r.Categories(), id) {
		return domain.Category{}, fmt.Errorf("%w: %q", domain.ErrDuplicateCategory, id)
	}

	c := domain.Category{ID: id, Name: name}
	next := append(r.Categories(), c)
	if err := r.persist(ctx, store.KeyCategories, next); err != nil {
		return domain.Category{}, err
	}
	r.swapCategories(next)

	r.log.Info("category added", logger.String("id", id))
	return c, nil
}

// DeleteCategory reassigns the category's bookmarks to the default
// category, persists them, then removes the category itself. The
// reserved default category is always refused. Deleting an unknown id
// is a no-op.
//
// The two writes are intentionally sequential: if the second fails the
// reassignment still holds, which is safe and idempotent.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if id == domain.DefaultCategoryID {
		return domain.ErrProtectedCategory
	}

	categories := r.Categories()
	idx := -1
	for i, c := range categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	nextBookmarks := r.Bookmarks()
	moved := 0
	for i, b := range nextBookmarks {
		if b.CategoryID == id {
			nextBookmarks[i].CategoryID = domain.DefaultCategoryID
			moved++
		}
	}
	if moved > 0 {
		if err := r.persist(ctx, store.KeyBookmarks, nextBookmarks); err != nil {
			return err
		}
		r.swapBookmarks(nextBookmarks)
	}

	nextCategories := append(categories[:idx], categories[idx+1:]...)
	if err := r.persist(ctx, store.KeyCategories, nextCategories); err != nil {
		return err
	}
	r.swapCategories(nextCategories)

	r.log.Info("category deleted",
		logger.String("id", id),
		logger.Int("bookmarks_reassigned", moved))
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Display settings
// ─────────────────────────────────────────────────────────────────

// SaveSettings validates and persists the display preferences,
// updating the in-memory copy only after the write is confirmed.
func (r *Repository) SaveSettings(ctx context.Context, s domain.DisplaySettings) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.persist(ctx, store.KeySettings, s); err != nil {
		return err
	}

	r.mu.Lock()
	r.settings = s
	r.mu.Unlock()
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────

func (r *Repository) persist(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", key, err)
	}
	if err := r.kv.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s record: %w", key, err)
	}
	return nil
}

func (r *Repository) swapBookmarks(next []domain.Bookmark) {
	r.mu.Lock()
	r.bookmarks = next
	r.mu.Unlock()
}

func (r *Repository) swapCategories(next []domain.Category) {
	r.mu.Lock()
	r.categories = next
	r.mu.Unlock()
}

func hasCategory(categories []domain.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func indexOf(bookmarks []domain.Bookmark, id string) int {
	for i, b := range bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
