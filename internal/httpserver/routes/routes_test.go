package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/routes"
	"github.com/linkdeck/linkdeck/internal/importer"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/preview"
	"github.com/linkdeck/linkdeck/internal/repo"
	"github.com/linkdeck/linkdeck/internal/sources/browser"
	"github.com/linkdeck/linkdeck/internal/store/memstore"
)

type staticSource struct {
	entries []browser.Entry
}

func (s *staticSource) GetBookmarks(ctx context.Context) ([]browser.Entry, error) {
	return s.entries, nil
}

func (s *staticSource) Ping(ctx context.Context) (string, error) {
	return "ok", nil
}

func newServer(t *testing.T, kv *memstore.Store) (*httptest.Server, *repo.Repository) {
	t.Helper()
	log := logger.New("error", false)

	repository := repo.New(kv, repo.DefaultSeed(), log)
	if err := repository.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	source := &staticSource{}
	d := deps.Deps{
		Logger:         log,
		StartTime:      time.Now(),
		TimeNow:        time.Now,
		Repo:           repository,
		Importer:       importer.New(source, repository, log),
		Source:         source,
		Preview:        preview.New(2*time.Second, log),
		PreviewTracker: &preview.Tracker{},
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, repository
}

func do(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp, out.Bytes()
}

// The full dashboard lifecycle: seed, add a category, file a bookmark
// under it, delete the category and watch the bookmark fall back to the
// default one, all through the registered routes and surviving a
// process restart against the same store.
func TestDashboardLifecycle(t *testing.T) {
	kv := memstore.New()
	server, _ := newServer(t, kv)

	// Fresh install ships the seed categories.
	resp, body := do(t, http.MethodGet, server.URL+"/api/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET categories status = %d", resp.StatusCode)
	}
	var categories []domain.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		t.Fatalf("failed to decode categories: %v", err)
	}
	if len(categories) != 3 || categories[0].ID != domain.DefaultCategoryID {
		t.Fatalf("seed categories = %+v", categories)
	}

	// New category.
	resp, body = do(t, http.MethodPost, server.URL+"/api/categories", map[string]string{"name": "Reading List"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST category status = %d, body %s", resp.StatusCode, body)
	}

	// Bookmark filed under it.
	resp, body = do(t, http.MethodPost, server.URL+"/api/bookmarks", domain.Bookmark{
		Title:      "Effective Go",
		URL:        "https://go.dev/doc/effective_go",
		Tags:       []string{"go", "reference"},
		CategoryID: "reading-list",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST bookmark status = %d, body %s", resp.StatusCode, body)
	}
	var created domain.Bookmark
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("failed to decode bookmark: %v", err)
	}

	// Tag union sees the new tags.
	_, body = do(t, http.MethodGet, server.URL+"/api/tags", nil)
	var tags []string
	if err := json.Unmarshal(body, &tags); err != nil {
		t.Fatalf("failed to decode tags: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v, want go and reference", tags)
	}

	// Deleting the category reassigns its bookmarks.
	resp, _ = do(t, http.MethodDelete, server.URL+"/api/categories/reading-list", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE category status = %d", resp.StatusCode)
	}

	_, body = do(t, http.MethodGet, server.URL+"/api/bookmarks", nil)
	var bookmarks []domain.Bookmark
	if err := json.Unmarshal(body, &bookmarks); err != nil {
		t.Fatalf("failed to decode bookmarks: %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].CategoryID != domain.DefaultCategoryID {
		t.Fatalf("after category delete bookmarks = %+v", bookmarks)
	}

	// A second process over the same store sees the committed state.
	_, repository := newServer(t, kv)
	if got := repository.Bookmarks(); len(got) != 1 || got[0].ID != created.ID {
		t.Errorf("restarted repository bookmarks = %+v", got)
	}
	if got := repository.Categories(); len(got) != 3 {
		t.Errorf("restarted repository categories = %+v", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := newServer(t, memstore.New())

	resp, body := do(t, http.MethodGet, server.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /healthz status = %d", resp.StatusCode)
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("failed to decode healthz: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("healthz status = %q, want ok", health.Status)
	}

	resp, _ = do(t, http.MethodGet, server.URL+"/readyz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /readyz status = %d", resp.StatusCode)
	}
}
