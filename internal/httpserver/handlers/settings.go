package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Repo.Settings())
	}
}

// UpdateSettings persists new display preferences. Out-of-enum values
// are rejected without touching the stored ones.
func UpdateSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s domain.DisplaySettings
		if !decodeBody(w, r, &s) {
			return
		}

		if err := d.Repo.SaveSettings(r.Context(), s); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}
