package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

// ListBookmarks returns the collection, narrowed by the optional
// q, category and tags query parameters. All criteria are conjunctive.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		category := r.URL.Query().Get("category")
		if category == "" {
			category = domain.CategoryAll
		}

		var tags []string
		if raw := r.URL.Query().Get("tags"); raw != "" {
			tags = strings.Split(raw, ",")
		}

		writeJSON(w, http.StatusOK, domain.Filter(d.Repo.Bookmarks(), query, category, tags))
	}
}

// CreateBookmark appends a new bookmark from the posted draft.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft domain.Bookmark
		if !decodeBody(w, r, &draft) {
			return
		}

		b, err := d.Repo.Add(r.Context(), draft)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)
	}
}

// UpdateBookmark replaces the identified bookmark's fields with the
// posted draft's.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft domain.Bookmark
		if !decodeBody(w, r, &draft) {
			return
		}

		b, err := d.Repo.Update(r.Context(), chi.URLParam(r, "id"), draft)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// DeleteBookmark removes the identified bookmark. Unknown ids are a
// silent no-op.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type reorderDestination struct {
	CategoryID string `json:"categoryId"`
	Index      int    `json:"index"`
}

type reorderRequest struct {
	SourceIndex int                 `json:"sourceIndex"`
	Destination *reorderDestination `json:"destination"`
}

// ReorderBookmarks applies a completed drag gesture. A null destination
// means the drag was canceled and nothing changes.
func ReorderBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if req.Destination == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := d.Repo.Reorder(r.Context(), req.SourceIndex, req.Destination.CategoryID, req.Destination.Index); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Repo.Bookmarks())
	}
}
