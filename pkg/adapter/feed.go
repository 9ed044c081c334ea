package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/umputun/watchmon/pkg/domain"
)

// FeedAdapter reads RSS/Atom feeds. The item source id is the feed url.
// Items without a body get their linked page extracted when metadata "extract" is "true".
type FeedAdapter struct {
	HTTPOptions

	hc lazyClient
}

// Fetch parses the feed and returns one message per entry
func (f *FeedAdapter) Fetch(ctx context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.SourceID, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent())
	addBrowserHeaders(req)

	client := f.hc.get(f.HTTPOptions)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for feed %s", resp.StatusCode, item.SourceID)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, nil
	}

	extract := item.Meta("extract") == "true"
	raw := make([]RawMessage, 0, len(feed.Items))
	for _, entry := range feed.Items {
		body := plainText(entry.Content)
		if body == "" {
			body = plainText(entry.Description)
		}
		if body == "" && extract && entry.Link != "" {
			text, err := f.extract(ctx, client, entry.Link)
			if err != nil {
				lgr.Printf("[DEBUG] can't extract %s: %v", entry.Link, err)
			}
			body = text
		}

		text := strings.TrimSpace(entry.Title)
		if body != "" {
			text = strings.TrimSpace(text + "\n" + body)
		}

		var author string
		if entry.Author != nil {
			author = entry.Author.Name
		}

		var ts any
		if entry.PublishedParsed != nil {
			ts = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			ts = *entry.UpdatedParsed
		}

		raw = append(raw, RawMessage{ID: entryID(feed.Title, entry), Text: text, Author: author, Timestamp: ts})
	}
	return Normalize(raw), nil
}

// entryID picks guid, then link, then a hash of title and description
func entryID(feedTitle string, entry *gofeed.Item) string {
	if entry.GUID != "" {
		return entry.GUID
	}
	if entry.Link != "" {
		return entry.Link
	}
	if entry.Title == "" && entry.Description == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(feedTitle + "\x00" + entry.Title + "\x00" + entry.Description))
	return hex.EncodeToString(sum[:16])
}

// extract retrieves the linked page and returns its main text
func (f *FeedAdapter) extract(ctx context.Context, client *http.Client, link string) (string, error) {
	parsedURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", link)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent())
	addBrowserHeaders(req)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, link)
	}

	// pages are often served in legacy encodings, decode before parsing
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", link, err)
	}
	doc, err := html.Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse html %s: %w", link, err)
	}

	result, err := trafilatura.ExtractDocument(doc, trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	})
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", link, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return "", fmt.Errorf("no text content extracted from %s", link)
	}
	return plainText(result.ContentText), nil
}
