package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

// ListTags returns the deduplicated union of every bookmark's tags.
func ListTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Repo.Tags())
	}
}
