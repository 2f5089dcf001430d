package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
)

type importResponse struct {
	Fetched int `json:"fetched"`
	Added   int `json:"added"`
}

// Import pulls the native browser bookmarks into the collection.
// A source that answers with nothing new is a success with added == 0;
// a source that cannot be reached is a gateway failure.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := d.Importer.Run(r.Context())
		if err != nil {
			d.Logger.Warn("import failed", logger.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, importResponse{Fetched: result.Fetched, Added: result.Added})
	}
}
