package repo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// DefaultSeed is the category list installed when no seed file is
// configured: the reserved default plus the two starter categories.
func DefaultSeed() []domain.Category {
	return []domain.Category{
		{ID: domain.DefaultCategoryID, Name: "General"},
		{ID: "work", Name: "Work"},
		{ID: "personal", Name: "Personal"},
	}
}

type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
}

type seedCategory struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
}

// LoadSeed reads first-run categories from a YAML file. Entries
// without an explicit id get the slug of their name. The reserved
// default category is prepended if the file omits it; duplicate ids
// are dropped.
func LoadSeed(path string) ([]domain.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	seen := make(map[string]bool)
	var categories []domain.Category
	for _, entry := range file.Categories {
		if entry.Name == "" {
			continue
		}
		id := entry.ID
		if id == "" {
			id = domain.CategoryIDFromName(entry.Name)
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		categories = append(categories, domain.Category{ID: id, Name: entry.Name})
	}

	if !seen[domain.DefaultCategoryID] {
		categories = append([]domain.Category{{ID: domain.DefaultCategoryID, Name: "General"}}, categories...)
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories found in seed file %s", path)
	}
	return categories, nil
}
