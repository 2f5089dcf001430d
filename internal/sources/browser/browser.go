// Package browser reads the host browser's native bookmark store and
// exposes it as a flat list of {title, url} entries. Sources are
// addressed through a small request/response protocol so callers can
// treat the whole capability as opaque and degrade gracefully when it
// is unavailable.
package browser

import (
	"context"
	"fmt"
)

// Protocol actions.
const (
	ActionGetBookmarks = "getBookmarks"
	ActionPing         = "ping"
)

// Entry is one flattened native bookmark.
type Entry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Request is a message sent to the bookmark source.
type Request struct {
	Action string `json:"action"`
}

// Response is the source's answer. Success is false on any soft
// failure; Message carries the reason or the ping reply.
type Response struct {
	Success   bool    `json:"success"`
	Bookmarks []Entry `json:"bookmarks,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// Client is a native bookmark source.
type Client interface {
	// GetBookmarks returns the full tree flattened in pre-order:
	// each node carrying a URL contributes an entry, siblings keep
	// their source order.
	GetBookmarks(ctx context.Context) ([]Entry, error)

	// Ping probes the source for liveness and returns a short
	// status message.
	Ping(ctx context.Context) (string, error)
}

// Dispatch routes a protocol request to the client and converts any
// error into an unsuccessful response. It never fails hard: a broken
// source yields {success: false}.
func Dispatch(ctx context.Context, c Client, req Request) Response {
	switch req.Action {
	case ActionGetBookmarks:
		entries, err := c.GetBookmarks(ctx)
		if err != nil {
			return Response{Success: false, Message: err.Error()}
		}
		return Response{Success: true, Bookmarks: entries}
	case ActionPing:
		msg, err := c.Ping(ctx)
		if err != nil {
			return Response{Success: false, Message: err.Error()}
		}
		return Response{Success: true, Message: msg}
	default:
		return Response{Success: false, Message: fmt.Sprintf("unknown action %q", req.Action)}
	}
}

// New resolves a source by kind. customPath overrides the per-platform
// default bookmark store location.
func New(kind, customPath string) (Client, error) {
	switch kind {
	case "chrome", "chromium", "brave", "edge":
		return NewChromium(kind, customPath), nil
	case "firefox":
		return NewFirefox(customPath), nil
	case "safari":
		return NewSafari(customPath), nil
	default:
		return nil, fmt.Errorf("unknown browser source %q", kind)
	}
}
