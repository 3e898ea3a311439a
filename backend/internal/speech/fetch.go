package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxPageBytes caps how much of a transcript page is read
const MaxPageBytes = 5 << 20

// Fetcher downloads transcript pages
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher. A nil client gets a 30 second timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client, userAgent: "Mozilla/5.0 (compatible; CampaignSpeeches/1.0)"}
}

// IsURL reports whether source names a web page rather than a file
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch downloads rawURL and imports it like a saved page. meta.Source is
// set to the URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, meta PageMeta) (Speech, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return Speech{}, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Speech{}, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Speech{}, fmt.Errorf("failed to fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes))
	if err != nil {
		return Speech{}, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}

	meta.Source = rawURL
	return ImportHTML(bytes.NewReader(body), meta)
}
