package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerPreview) }

func registerPreview(r chi.Router, d deps.Deps) {
	r.Get("/api/preview", handlers.Preview(d))
	r.Delete("/api/preview", handlers.PreviewReset(d))
}
