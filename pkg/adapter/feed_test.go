package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/watchmon/pkg/domain"
)

const testArticle = `<!DOCTYPE html>
<html><head><title>Release</title></head>
<body><article>
<h1>Version 2.0 released</h1>
<p>The new release drops support for the legacy configuration format and requires a migration before upgrading.</p>
<p>Operators should run the migration tool and verify their settings before the end of the month.</p>
</article></body></html>`

func feedXML(base string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Project news</title><link>` + base + `</link><description>news</description>
<item><title>Security advisory</title><guid>adv-1</guid><description>&lt;p&gt;Patch &lt;b&gt;now&lt;/b&gt;&lt;/p&gt;</description>
<author>sec@example.com (Security Team)</author><pubDate>Tue, 02 Jan 2024 03:04:05 +0000</pubDate></item>
<item><title>Release notes</title><link>` + base + `/article</link><pubDate>Tue, 02 Jan 2024 03:04:05 +0000</pubDate></item>
</channel></rss>`
}

func TestFeedAdapter_Fetch(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed":
			assert.Equal(t, "watchmon-test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(feedXML(ts.URL)))
		case "/article":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(testArticle))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	f := &FeedAdapter{HTTPOptions: HTTPOptions{Timeout: 5 * time.Second, UserAgent: "watchmon-test"}}

	t.Run("without extraction", func(t *testing.T) {
		msgs, err := f.Fetch(context.Background(), domain.WatchedItem{Platform: domain.PlatformRSS, Type: domain.ItemFeed, SourceID: ts.URL + "/feed"})
		require.NoError(t, err)
		require.Len(t, msgs, 2)

		assert.Equal(t, "adv-1", msgs[0].ID)
		assert.Equal(t, "Security advisory\nPatch now", msgs[0].Text)
		assert.Equal(t, "2024-01-02T03:04:05Z", msgs[0].Timestamp)

		assert.Equal(t, ts.URL+"/article", msgs[1].ID, "link is the fallback id")
		assert.Equal(t, "Release notes", msgs[1].Text)
	})

	t.Run("with extraction", func(t *testing.T) {
		item := domain.WatchedItem{Platform: domain.PlatformRSS, Type: domain.ItemFeed, SourceID: ts.URL + "/feed",
			Metadata: map[string]string{"extract": "true"}}
		msgs, err := f.Fetch(context.Background(), item)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.True(t, strings.HasPrefix(msgs[1].Text, "Release notes\n"))
		assert.Contains(t, msgs[1].Text, "migration")
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), domain.WatchedItem{SourceID: ts.URL + "/missing"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestFeedAdapter_ParseErrorAndEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>none</title></channel></rss>`))
			return
		}
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer ts.Close()

	f := &FeedAdapter{}
	_, err := f.Fetch(context.Background(), domain.WatchedItem{SourceID: ts.URL + "/bad"})
	require.Error(t, err)

	msgs, err := f.Fetch(context.Background(), domain.WatchedItem{SourceID: ts.URL + "/empty"})
	require.NoError(t, err)
	assert.Nil(t, msgs)
}
