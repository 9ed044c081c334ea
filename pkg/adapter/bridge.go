package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/umputun/watchmon/pkg/domain"
)

// BridgeAdapter reads recent activity from a platform's local agent.
// The agent serves GET {base}/recent?limit=N with either a JSON array of
// messages or an object with a "messages" array.
type BridgeAdapter struct {
	BaseURL string
	Limit   int
	HTTPOptions

	hc lazyClient
}

// bridgeMessage is one record served by a local agent
type bridgeMessage struct {
	ID          flexID `json:"id"`
	Text        string `json:"text"`
	Content     string `json:"content"`
	HTML        string `json:"html"`
	Author      string `json:"author"`
	Timestamp   any    `json:"timestamp"`
	ContainerID string `json:"container_id"`
	ServerID    string `json:"server_id"`
}

// Fetch returns recent messages scoped to the item. Server items keep messages
// whose server id matches, other items keep messages of the matching container.
func (b *BridgeAdapter) Fetch(ctx context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error) {
	if b.BaseURL == "" {
		return nil, fmt.Errorf("no bridge url configured for %s", item.Platform)
	}

	limit := b.Limit
	if limit <= 0 {
		limit = 100
	}
	u := strings.TrimSuffix(b.BaseURL, "/") + "/recent?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()

	var payload json.RawMessage
	if err := getJSON(ctx, b.hc.get(b.HTTPOptions), u, map[string]string{"User-Agent": b.userAgent()}, &payload); err != nil {
		return nil, err
	}

	records, err := decodeBridge(payload)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	raw := make([]RawMessage, 0, len(records))
	for _, r := range records {
		container := r.ContainerID
		if item.Type == domain.ItemServer {
			container = r.ServerID
		}
		raw = append(raw, RawMessage{
			ID:          string(r.ID),
			Text:        bridgeText(r),
			Author:      r.Author,
			Timestamp:   r.Timestamp,
			ContainerID: container,
		})
	}
	return FilterContainer(Normalize(raw), item.SourceID), nil
}

func decodeBridge(payload json.RawMessage) ([]bridgeMessage, error) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var records []bridgeMessage
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil, fmt.Errorf("decode bridge messages: %w", err)
		}
		return records, nil
	}

	var wrapped struct {
		Messages []bridgeMessage `json:"messages"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return nil, fmt.Errorf("decode bridge messages: %w", err)
	}
	return wrapped.Messages, nil
}

func bridgeText(r bridgeMessage) string {
	switch {
	case r.Text != "":
		return plainText(r.Text)
	case r.Content != "":
		return plainText(r.Content)
	default:
		return plainText(r.HTML)
	}
}

// flexID accepts ids encoded as JSON strings or numbers
type flexID string

// UnmarshalJSON implements json.Unmarshaler
func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*f = flexID(str)
		return nil
	}
	*f = flexID(s)
	return nil
}
