// Package preview resolves a best-effort preview image for a URL by
// fetching the page and reading its Open Graph metadata. It is an
// enrichment only: every failure degrades to the deterministic
// favicon fallback.
package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/utils"
)

// maxBodyBytes caps how much of a page is read for metadata.
const maxBodyBytes = 1 << 20

// Selectors tried in order for a usable preview image.
var imageSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="twitter:image"]`,
}

// Client fetches preview images.
type Client struct {
	http *http.Client
	log  logger.Logger
}

// New creates a preview client with the given fetch timeout.
func New(timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Resolve returns a preview image URL for rawURL. When the page
// cannot be fetched or carries no usable metadata the favicon
// fallback is returned instead; only an invalid input URL errors.
func (c *Client) Resolve(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute url", domain.ErrValidation, rawURL)
	}

	if img := c.fetchImage(ctx, rawURL); img != "" {
		return img, nil
	}
	return domain.FaviconURL(rawURL), nil
}

func (c *Client) fetchImage(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("preview fetch failed",
			logger.String("url", rawURL),
			logger.Error(err))
		return ""
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("preview fetch non-200",
			logger.String("url", rawURL),
			logger.Int("status", resp.StatusCode))
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ""
	}

	for _, sel := range imageSelectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			return content
		}
	}
	return ""
}

// Tracker associates in-flight preview fetches with a generation so a
// stale result arriving after the draft form was reset can be
// discarded instead of applied.
type Tracker struct {
	gen atomic.Uint64
}

// Begin starts a new fetch generation and returns its token.
func (t *Tracker) Begin() uint64 {
	return t.gen.Add(1)
}

// Invalidate marks every outstanding generation stale, e.g. when the
// draft form is closed.
func (t *Tracker) Invalidate() {
	t.gen.Add(1)
}

// Current reports whether the token still belongs to the latest
// generation.
func (t *Tracker) Current(token uint64) bool {
	return t.gen.Load() == token
}
