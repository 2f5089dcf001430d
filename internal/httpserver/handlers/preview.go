package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type previewResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Preview resolves a preview image for the url query parameter. The
// fetch is tied to the current form generation: if the form was reset
// while the fetch ran, the stale result is discarded with 409.
func Preview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := d.PreviewTracker.Begin()

		img, err := d.Preview.Resolve(r.Context(), r.URL.Query().Get("url"))
		if err != nil {
			writeError(w, err)
			return
		}

		if !d.PreviewTracker.Current(token) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "preview request superseded"})
			return
		}
		writeJSON(w, http.StatusOK, previewResponse{ImageURL: img})
	}
}

// PreviewReset invalidates every in-flight preview fetch, e.g. when the
// draft form is closed.
func PreviewReset(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.PreviewTracker.Invalidate()
		w.WriteHeader(http.StatusNoContent)
	}
}
