package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// maxBodySize limits JSON responses read from sources
const maxBodySize = 10 * 1024 * 1024

// HTTPOptions configures HTTP based adapters
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client // optional, built from Timeout when nil
}

func (o HTTPOptions) newClient() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// lazyClient builds the adapter's http client on first use and reuses it after,
// keeping one connection pool per adapter
type lazyClient struct {
	once   sync.Once
	client *http.Client
}

func (l *lazyClient) get(o HTTPOptions) *http.Client {
	l.once.Do(func() { l.client = o.newClient() })
	return l.client
}

func (o HTTPOptions) userAgent() string {
	if o.UserAgent == "" {
		return "Watchmon/1.0"
	}
	return o.UserAgent
}

// getJSON performs a GET request and decodes the JSON response into v
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d from %s: %s", resp.StatusCode, url, body)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
	"fr-FR,fr;q=0.9,en;q=0.8",
}

// addBrowserHeaders makes page fetches look like a regular browser, some sites reject bare clients
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
}
