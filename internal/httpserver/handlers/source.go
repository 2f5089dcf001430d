package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/sources/browser"
)

// Source exposes the native bookmark message protocol: post an action,
// get a soft-failure response. Transport always succeeds; errors ride
// inside the body.
func Source(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req browser.Request
		if !decodeBody(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, browser.Dispatch(r.Context(), d.Source, req))
	}
}

// SourcePing reports whether the native bookmark store is reachable.
func SourcePing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := browser.Dispatch(r.Context(), d.Source, browser.Request{Action: browser.ActionPing})
		writeJSON(w, http.StatusOK, resp)
	}
}
