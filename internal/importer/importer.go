// Package importer pulls the native browser bookmark tree into the
// repository, skipping URLs that already exist.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/repo"
	"github.com/linkdeck/linkdeck/internal/sources/browser"
)

// Result reports one finished import run. Added == 0 with a nil error
// means the source answered but held nothing new, which callers must
// surface differently from a fetch failure.
type Result struct {
	Fetched int // entries flattened from the native tree
	Added   int // bookmarks actually appended
}

// Importer wires a native bookmark source to the repository.
type Importer struct {
	source browser.Client
	repo   *repo.Repository
	log    logger.Logger
}

// New creates an importer.
func New(source browser.Client, r *repo.Repository, log logger.Logger) *Importer {
	return &Importer{
		source: source,
		repo:   r,
		log:    log,
	}
}

// Run fetches the flattened native tree, maps every entry to a draft
// bookmark and appends the ones whose URL is not yet present, in one
// persisted batch. A fetch failure imports nothing.
func (i *Importer) Run(ctx context.Context) (Result, error) {
	entries, err := i.source.GetBookmarks(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch native bookmarks: %w", err)
	}

	i.log.Info("fetched native bookmarks", logger.Int("count", len(entries)))

	added, err := i.repo.ImportBatch(ctx, MapEntries(entries))
	if err != nil {
		return Result{}, err
	}

	return Result{Fetched: len(entries), Added: added}, nil
}

// MapEntries converts flattened native entries to draft bookmarks:
// blank titles become "Untitled", the preview image defaults to the
// favicon template, tags start empty and everything lands in the
// default category.
func MapEntries(entries []browser.Entry) []domain.Bookmark {
	drafts := make([]domain.Bookmark, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = "Untitled"
		}
		drafts = append(drafts, domain.Bookmark{
			Title:      title,
			URL:        e.URL,
			ImageURL:   domain.FaviconURL(e.URL),
			Tags:       []string{},
			CategoryID: domain.DefaultCategoryID,
		})
	}
	return drafts
}
