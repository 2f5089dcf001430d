package repo

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store/memstore"
)

func newTestRepo(t *testing.T) (*Repository, *memstore.Store) {
	t.Helper()
	kv := memstore.New()
	r := New(kv, DefaultSeed(), logger.New("error", false))
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return r, kv
}

func TestLoadSeedsOnFirstRun(t *testing.T) {
	r, _ := newTestRepo(t)

	categories := r.Categories()
	if len(categories) != 3 {
		t.Fatalf("Load() seeded %d categories, want 3", len(categories))
	}
	if categories[0].ID != domain.DefaultCategoryID {
		t.Errorf("first seeded category = %q, want %q", categories[0].ID, domain.DefaultCategoryID)
	}
	if len(r.Bookmarks()) != 0 {
		t.Errorf("Load() on empty store should start with no bookmarks")
	}
}

func TestAddAssignsDefaults(t *testing.T) {
	r, _ := newTestRepo(t)

	b, err := r.Add(context.Background(), domain.Bookmark{
		Title: "Go Blog",
		URL:   "https://go.dev/blog",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if b.ID == "" {
		t.Error("Add() did not assign an id")
	}
	if b.CategoryID != domain.DefaultCategoryID {
		t.Errorf("Add() category = %q, want default", b.CategoryID)
	}
	if want := "https://www.google.com/s2/favicons?domain=go.dev&sz=128"; b.ImageURL != want {
		t.Errorf("Add() imageUrl = %q, want favicon fallback %q", b.ImageURL, want)
	}
	if len(r.Bookmarks()) != 1 {
		t.Errorf("repository has %d bookmarks, want 1", len(r.Bookmarks()))
	}
}

func TestAddRejectsInvalidDraft(t *testing.T) {
	r, kv := newTestRepo(t)
	writesAfterLoad := kv.Writes()

	tests := []struct {
		name  string
		draft domain.Bookmark
	}{
		{name: "empty title", draft: domain.Bookmark{Title: "", URL: "https://go.dev"}},
		{name: "invalid url", draft: domain.Bookmark{Title: "Go", URL: "not-a-url"}},
		{name: "unknown category", draft: domain.Bookmark{Title: "Go", URL: "https://go.dev", CategoryID: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Add(context.Background(), tt.draft); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Add() error = %v, want ErrValidation", err)
			}
		})
	}

	if len(r.Bookmarks()) != 0 {
		t.Error("rejected drafts must not change the collection")
	}
	if kv.Writes() != writesAfterLoad {
		t.Error("rejected drafts must not reach the store")
	}
}

func TestUpdateKeepsImageURLWhenDraftEmpty(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	b, _ := r.Add(ctx, domain.Bookmark{Title: "Go", URL: "https://go.dev", ImageURL: "https://img.example/go.png"})

	updated, err := r.Update(ctx, b.ID, domain.Bookmark{
		Title:      "Go Dev",
		URL:        "https://go.dev",
		CategoryID: "work",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ImageURL != "https://img.example/go.png" {
		t.Errorf("Update() imageUrl = %q, want the existing value kept", updated.ImageURL)
	}
	if updated.Title != "Go Dev" || updated.CategoryID != "work" {
		t.Errorf("Update() = %+v, want replaced title and category", updated)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	r, _ := newTestRepo(t)

	_, err := r.Update(context.Background(), "missing", domain.Bookmark{Title: "x", URL: "https://x.com"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	r, kv := newTestRepo(t)
	ctx := context.Background()

	b, _ := r.Add(ctx, domain.Bookmark{Title: "Go", URL: "https://go.dev"})
	if err := r.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(r.Bookmarks()) != 0 {
		t.Error("Delete() did not remove the bookmark")
	}

	writes := kv.Writes()
	if err := r.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete() of absent id error = %v, want nil", err)
	}
	if kv.Writes() != writes {
		t.Error("Delete() of absent id must not persist")
	}
}

func TestAddCategory(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	c, err := r.AddCategory(ctx, "Side Projects")
	if err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if c.ID != "side-projects" || c.Name != "Side Projects" {
		t.Errorf("AddCategory() = %+v, want slug id and trimmed name", c)
	}

	if _, err := r.AddCategory(ctx, "   "); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("AddCategory(blank) error = %v, want ErrValidation", err)
	}
	if _, err := r.AddCategory(ctx, "side  projects"); !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Errorf("AddCategory(colliding slug) error = %v, want ErrDuplicateCategory", err)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	a, _ := r.Add(ctx, domain.Bookmark{Title: "A", URL: "https://a.com", CategoryID: "work"})
	b, _ := r.Add(ctx, domain.Bookmark{Title: "B", URL: "https://b.com", CategoryID: "personal"})

	if err := r.DeleteCategory(ctx, "work"); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}

	for _, got := range r.Bookmarks() {
		switch got.ID {
		case a.ID:
			if got.CategoryID != domain.DefaultCategoryID {
				t.Errorf("bookmark A category = %q, want reassigned to default", got.CategoryID)
			}
		case b.ID:
			if got.CategoryID != "personal" {
				t.Errorf("bookmark B category = %q, want untouched", got.CategoryID)
			}
		}
	}
	if hasCategory(r.Categories(), "work") {
		t.Error("DeleteCategory() left the category in place")
	}
}

func TestDeleteCategoryRefusesDefault(t *testing.T) {
	r, _ := newTestRepo(t)

	if err := r.DeleteCategory(context.Background(), domain.DefaultCategoryID); !errors.Is(err, domain.ErrProtectedCategory) {
		t.Errorf("DeleteCategory(default) error = %v, want ErrProtectedCategory", err)
	}
	if !hasCategory(r.Categories(), domain.DefaultCategoryID) {
		t.Error("default category must survive")
	}
}

func TestDeleteCategoryUnknownIsNoop(t *testing.T) {
	r, kv := newTestRepo(t)
	writes := kv.Writes()

	if err := r.DeleteCategory(context.Background(), "missing"); err != nil {
		t.Fatalf("DeleteCategory(missing) error = %v, want nil", err)
	}
	if kv.Writes() != writes {
		t.Error("DeleteCategory(missing) must not persist")
	}
}

func TestReorderPersistsNewOrder(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	first, _ := r.Add(ctx, domain.Bookmark{Title: "1", URL: "https://one.com"})
	second, _ := r.Add(ctx, domain.Bookmark{Title: "2", URL: "https://two.com"})

	if err := r.Reorder(ctx, 0, "work", 1); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	got := r.Bookmarks()
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("Reorder() order = [%s %s], want [%s %s]", got[0].ID, got[1].ID, second.ID, first.ID)
	}
	if got[1].CategoryID != "work" {
		t.Errorf("Reorder() moved bookmark category = %q, want work", got[1].CategoryID)
	}
}

func TestReorderUnknownCategory(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	r.Add(ctx, domain.Bookmark{Title: "1", URL: "https://one.com"})

	if err := r.Reorder(ctx, 0, "missing", 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Reorder() error = %v, want ErrValidation", err)
	}
}

func TestImportBatchDedupsByExactURL(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	r.Add(ctx, domain.Bookmark{Title: "X", URL: "https://x.com/"})

	added, err := r.ImportBatch(ctx, []domain.Bookmark{
		{Title: "X again", URL: "https://x.com/"},
		{Title: "Y", URL: "https://y.com/"},
	})
	if err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}
	if added != 1 {
		t.Errorf("ImportBatch() added = %d, want 1", added)
	}
	if len(r.Bookmarks()) != 2 {
		t.Errorf("repository has %d bookmarks, want 2", len(r.Bookmarks()))
	}
}

func TestImportBatchZeroNewSkipsWrite(t *testing.T) {
	r, kv := newTestRepo(t)
	ctx := context.Background()

	r.Add(ctx, domain.Bookmark{Title: "X", URL: "https://x.com/"})
	writes := kv.Writes()

	added, err := r.ImportBatch(ctx, []domain.Bookmark{{Title: "X", URL: "https://x.com/"}})
	if err != nil {
		t.Fatalf("ImportBatch() error = %v", err)
	}
	if added != 0 {
		t.Errorf("ImportBatch() added = %d, want 0", added)
	}
	if kv.Writes() != writes {
		t.Error("ImportBatch() with nothing new must not persist")
	}
}

func TestSaveFailureKeepsOldSnapshot(t *testing.T) {
	r, kv := newTestRepo(t)
	ctx := context.Background()

	b, _ := r.Add(ctx, domain.Bookmark{Title: "Go", URL: "https://go.dev"})

	kv.FailSave = errors.New("disk full")
	if _, err := r.Add(ctx, domain.Bookmark{Title: "Other", URL: "https://other.dev"}); err == nil {
		t.Fatal("Add() with failing store should return an error")
	}
	if err := r.Delete(ctx, b.ID); err == nil {
		t.Fatal("Delete() with failing store should return an error")
	}

	got := r.Bookmarks()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("snapshot advanced despite save failure: %v", got)
	}
}

func TestSaveSettings(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	want := domain.DisplaySettings{CardSize: domain.CardLarge, CategoryLayout: domain.LayoutHorizontal}
	if err := r.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	if got := r.Settings(); got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}

	if err := r.SaveSettings(ctx, domain.DisplaySettings{CardSize: "huge", CategoryLayout: "grid"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("SaveSettings(invalid) error = %v, want ErrValidation", err)
	}
	if got := r.Settings(); got != want {
		t.Errorf("invalid settings must not replace the stored ones, got %+v", got)
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	kv := memstore.New()
	log := logger.New("error", false)
	ctx := context.Background()

	first := New(kv, DefaultSeed(), log)
	if err := first.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	first.Add(ctx, domain.Bookmark{Title: "Go", URL: "https://go.dev", Tags: []string{"lang", "docs"}})
	first.AddCategory(ctx, "Reading")
	first.SaveSettings(ctx, domain.DisplaySettings{CardSize: domain.CardSmall, CategoryLayout: domain.LayoutFlex})

	second := New(kv, DefaultSeed(), log)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("reload Load() error = %v", err)
	}

	if !reflect.DeepEqual(first.Bookmarks(), second.Bookmarks()) {
		t.Error("bookmarks did not round-trip through the store")
	}
	if !reflect.DeepEqual(first.Categories(), second.Categories()) {
		t.Error("categories did not round-trip through the store")
	}
	if first.Settings() != second.Settings() {
		t.Error("settings did not round-trip through the store")
	}
}

func TestLoadRepairsOrphanedBookmarks(t *testing.T) {
	kv := memstore.New()
	log := logger.New("error", false)
	ctx := context.Background()

	first := New(kv, DefaultSeed(), log)
	if err := first.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	b, _ := first.Add(ctx, domain.Bookmark{Title: "A", URL: "https://a.com", CategoryID: "work"})
	first.DeleteCategory(ctx, "work")

	// Reload from the store: the reassignment must have been persisted.
	second := New(kv, DefaultSeed(), log)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("reload Load() error = %v", err)
	}
	got := second.Bookmarks()
	if len(got) != 1 || got[0].ID != b.ID || got[0].CategoryID != domain.DefaultCategoryID {
		t.Errorf("reloaded bookmark = %+v, want category %q", got, domain.DefaultCategoryID)
	}
}
