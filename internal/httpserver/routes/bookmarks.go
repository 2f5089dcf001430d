package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/api/bookmarks", handlers.ListBookmarks(d))
	r.Post("/api/bookmarks", handlers.CreateBookmark(d))
	r.Put("/api/bookmarks/{id}", handlers.UpdateBookmark(d))
	r.Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
	r.Post("/api/bookmarks/reorder", handlers.ReorderBookmarks(d))
}
