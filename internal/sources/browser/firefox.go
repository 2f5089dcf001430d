package browser

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/mattn/go-sqlite3"

	"github.com/linkdeck/linkdeck/internal/utils"
)

// firefoxPaths maps platform to the Firefox profiles directory.
var firefoxPaths = map[string]string{
	"linux":   ".mozilla/firefox",
	"darwin":  "Library/Application Support/Firefox/Profiles",
	"windows": "Mozilla/Firefox/Profiles",
}

// Firefox reads bookmarks from a places.sqlite database.
type Firefox struct {
	path string
}

// NewFirefox creates a Firefox source. An empty customPath picks the
// first profile that carries a places.sqlite file.
func NewFirefox(customPath string) *Firefox {
	f := &Firefox{path: customPath}
	if f.path == "" {
		f.path = findPlacesDB()
	}
	return f
}

func findPlacesDB() string {
	relPath, ok := firefoxPaths[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}

	profilesDir := filepath.Join(base, relPath)
	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		placesPath := filepath.Join(profilesDir, entry.Name(), "places.sqlite")
		if _, err := os.Stat(placesPath); err == nil {
			return placesPath
		}
	}
	return ""
}

// GetBookmarks copies the database aside (Firefox keeps it locked)
// and reads every bookmark entry in insertion order.
func (f *Firefox) GetBookmarks(ctx context.Context) ([]Entry, error) {
	if f.path == "" {
		return nil, fmt.Errorf("no firefox profile with a places.sqlite found")
	}

	tmpFile, err := os.CreateTemp("", "linkdeck-places-*.sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp copy: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	srcFile, err := os.Open(f.path)
	if err != nil {
		utils.Close(tmpFile)
		return nil, fmt.Errorf("failed to open places.sqlite: %w", err)
	}
	_, copyErr := io.Copy(tmpFile, srcFile)
	utils.Close(srcFile)
	utils.Close(tmpFile)
	if copyErr != nil {
		return nil, fmt.Errorf("failed to copy places.sqlite: %w", copyErr)
	}

	db, err := sql.Open("sqlite3", tmpFile.Name()+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmark database: %w", err)
	}
	defer utils.Close(db)

	rows, err := db.QueryContext(ctx, `
		SELECT IFNULL(b.title, ''), p.url
		FROM moz_bookmarks b
		JOIN moz_places p ON b.fk = p.id
		WHERE b.type = 1 AND p.url IS NOT NULL
		ORDER BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer utils.Close(rows)

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Title, &e.URL); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookmark rows: %w", err)
	}
	return entries, nil
}

// Ping reports whether the profile database is present.
func (f *Firefox) Ping(ctx context.Context) (string, error) {
	if f.path == "" {
		return "", fmt.Errorf("no firefox profile with a places.sqlite found")
	}
	if _, err := os.Stat(f.path); err != nil {
		return "", fmt.Errorf("firefox bookmark store unreachable: %w", err)
	}
	return "firefox bookmark store is available", nil
}
