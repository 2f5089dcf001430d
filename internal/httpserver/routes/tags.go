package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerTags) }

func registerTags(r chi.Router, d deps.Deps) {
	r.Get("/api/tags", handlers.ListTags(d))
}
