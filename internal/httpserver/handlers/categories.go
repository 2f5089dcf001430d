package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Repo.Categories())
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory adds a category; its id is derived from the name.
func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		c, err := d.Repo.AddCategory(r.Context(), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

// DeleteCategory removes a category; its bookmarks move to the default
// category first. The default category itself is refused.
func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Repo.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
