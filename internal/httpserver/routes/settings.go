package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	r.Get("/api/settings", handlers.GetSettings(d))
	r.Put("/api/settings", handlers.UpdateSettings(d))
}
