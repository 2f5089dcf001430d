package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerSource) }

func registerSource(r chi.Router, d deps.Deps) {
	r.Post("/api/source", handlers.Source(d))
	r.Get("/api/source/ping", handlers.SourcePing(d))
}
