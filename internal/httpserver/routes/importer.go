package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerImport) }

func registerImport(r chi.Router, d deps.Deps) {
	r.Post("/api/import", handlers.Import(d))
}
