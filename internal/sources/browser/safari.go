package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"howett.net/plist"

	"github.com/linkdeck/linkdeck/internal/utils"
)

// Safari reads the macOS Bookmarks.plist.
type Safari struct {
	path string
}

// NewSafari creates a Safari source. Only meaningful on darwin unless
// a custom path is given.
func NewSafari(customPath string) *Safari {
	s := &Safari{path: customPath}
	if s.path == "" && runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		s.path = filepath.Join(home, "Library", "Safari", "Bookmarks.plist")
	}
	return s
}

type safariNode struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []safariNode      `plist:"Children"`
}

// GetBookmarks decodes the plist and flattens it in pre-order.
func (s *Safari) GetBookmarks(ctx context.Context) ([]Entry, error) {
	if s.path == "" {
		return nil, fmt.Errorf("safari bookmarks are only available on macOS")
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open safari bookmarks: %w", err)
	}
	defer utils.Close(file)

	var root safariNode
	if err := plist.NewDecoder(file).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse safari bookmarks: %w", err)
	}

	var entries []Entry
	flattenSafari(root, &entries)
	return entries, nil
}

func flattenSafari(node safariNode, entries *[]Entry) {
	if node.WebBookmarkType == "WebBookmarkTypeLeaf" {
		url := node.URLString
		if url == "" && node.URIDictionary != nil {
			url = node.URIDictionary[""]
		}
		title := node.Title
		if title == "" && node.URIDictionary != nil {
			title = node.URIDictionary["title"]
		}
		if url != "" {
			*entries = append(*entries, Entry{Title: title, URL: url})
		}
	}
	for _, child := range node.Children {
		flattenSafari(child, entries)
	}
}

// Ping reports whether the plist is present.
func (s *Safari) Ping(ctx context.Context) (string, error) {
	if s.path == "" {
		return "", fmt.Errorf("safari bookmarks are only available on macOS")
	}
	if _, err := os.Stat(s.path); err != nil {
		return "", fmt.Errorf("safari bookmark store unreachable: %w", err)
	}
	return "safari bookmark store is available", nil
}
