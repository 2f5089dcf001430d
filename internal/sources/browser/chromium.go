package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// chromiumPaths maps browser kind to its config directory per platform.
var chromiumPaths = map[string]map[string]string{
	"chrome": {
		"linux":   ".config/google-chrome",
		"darwin":  "Library/Application Support/Google/Chrome",
		"windows": "Google/Chrome/User Data",
	},
	"chromium": {
		"linux":   ".config/chromium",
		"darwin":  "Library/Application Support/Chromium",
		"windows": "Chromium/User Data",
	},
	"brave": {
		"linux":   ".config/BraveSoftware/Brave-Browser",
		"darwin":  "Library/Application Support/BraveSoftware/Brave-Browser",
		"windows": "BraveSoftware/Brave-Browser/User Data",
	},
	"edge": {
		"linux":   ".config/microsoft-edge",
		"darwin":  "Library/Application Support/Microsoft Edge",
		"windows": "Microsoft/Edge/User Data",
	},
}

// rootOrder fixes the traversal order of the top-level folders so the
// flattened output is deterministic.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

// Chromium reads the Bookmarks JSON file of a Chromium-based browser.
type Chromium struct {
	kind string
	path string
}

// NewChromium creates a source for the given browser kind. An empty
// customPath selects the default profile's bookmark file.
func NewChromium(kind, customPath string) *Chromium {
	c := &Chromium{kind: kind, path: customPath}
	if c.path == "" {
		c.path = c.defaultPath()
	}
	return c
}

func (c *Chromium) defaultPath() string {
	paths, ok := chromiumPaths[c.kind]
	if !ok {
		return ""
	}
	relPath, ok := paths[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("LOCALAPPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}
	return filepath.Join(base, relPath, "Default", "Bookmarks")
}

type chromiumNode struct {
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	Children []chromiumNode `json:"children"`
}

// GetBookmarks parses the bookmark file and flattens the tree in
// pre-order: a node with a URL contributes an entry, then its
// children are visited in source order.
func (c *Chromium) GetBookmarks(ctx context.Context) ([]Entry, error) {
	if c.path == "" {
		return nil, fmt.Errorf("%s bookmarks are not available on this platform", c.kind)
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s bookmarks: %w", c.kind, err)
	}

	var file struct {
		Roots map[string]chromiumNode `json:"roots"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s bookmarks: %w", c.kind, err)
	}

	var entries []Entry
	for _, root := range rootOrder {
		if node, ok := file.Roots[root]; ok {
			flattenChromium(node, &entries)
		}
	}
	return entries, nil
}

func flattenChromium(node chromiumNode, entries *[]Entry) {
	if node.URL != "" {
		*entries = append(*entries, Entry{Title: node.Name, URL: node.URL})
	}
	for _, child := range node.Children {
		flattenChromium(child, entries)
	}
}

// Ping reports whether the bookmark file is readable.
func (c *Chromium) Ping(ctx context.Context) (string, error) {
	if c.path == "" {
		return "", fmt.Errorf("%s bookmarks are not available on this platform", c.kind)
	}
	if _, err := os.Stat(c.path); err != nil {
		return "", fmt.Errorf("%s bookmark store unreachable: %w", c.kind, err)
	}
	return fmt.Sprintf("%s bookmark store is available", c.kind), nil
}
