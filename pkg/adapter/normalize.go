package adapter

import (
	"encoding/json"
	"html"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/watchmon/pkg/domain"
)

// RawMessage is a source record before normalization
type RawMessage struct {
	ID          string
	Text        string
	Author      string
	Timestamp   any
	ContainerID string
}

// epoch values above this are treated as milliseconds
const msThreshold = 1e12

// isoLayouts are ISO-8601 forms kept verbatim when a source already uses them
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// timeLayouts are other accepted string forms, converted to RFC 3339 UTC
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	time.RFC1123Z,
	time.RFC1123,
}

var allLayouts = slices.Concat(isoLayouts, timeLayouts)

var nowFn = time.Now

var stripPolicy = bluemonday.StrictPolicy()

// NormalizeTimestamp converts a source timestamp into ISO-8601. Strings already
// in an ISO-8601 form are kept as is, other date strings are converted to RFC 3339 UTC.
// Numbers above 1e12 are epoch milliseconds, smaller ones epoch seconds.
// Anything unparseable or outside years 1..9999 yields now.
func NormalizeTimestamp(v any) string {
	if s, ok := v.(string); ok && isISO(strings.TrimSpace(s)) {
		return strings.TrimSpace(s)
	}
	if t, ok := parseTimestamp(v); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return nowFn().UTC().Format(time.RFC3339)
}

func isISO(s string) bool {
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func parseTimestamp(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return inRange(val)
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return inRange(*val)
	case int:
		return fromEpoch(float64(val))
	case int64:
		return fromEpoch(float64(val))
	case float64:
		return fromEpoch(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromEpoch(f)
		}
		for _, layout := range allLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return inRange(t)
			}
		}
	}
	return time.Time{}, false
}

// maxEpochMillis is 9999-12-31T23:59:59.999Z in epoch milliseconds
const maxEpochMillis = 253402300799999

func fromEpoch(f float64) (time.Time, bool) {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if f > msThreshold {
		if f > maxEpochMillis {
			return time.Time{}, false
		}
		return inRange(time.UnixMilli(int64(f)))
	}
	sec, frac := math.Modf(f)
	return inRange(time.Unix(int64(sec), int64(frac*1e9)))
}

// inRange rejects times RFC 3339 can't represent
func inRange(t time.Time) (time.Time, bool) {
	if y := t.UTC().Year(); y < 1 || y > 9999 {
		return time.Time{}, false
	}
	return t, true
}

// Normalize turns raw records into content messages, dropping records with
// an empty id or empty text
func Normalize(raw []RawMessage) []domain.ContentMessage {
	res := make([]domain.ContentMessage, 0, len(raw))
	for _, r := range raw {
		id := strings.TrimSpace(r.ID)
		text := strings.TrimSpace(r.Text)
		if id == "" || text == "" {
			continue
		}
		res = append(res, domain.ContentMessage{
			ID:          id,
			Text:        text,
			Author:      strings.TrimSpace(r.Author),
			Timestamp:   NormalizeTimestamp(r.Timestamp),
			ContainerID: r.ContainerID,
		})
	}
	return res
}

// FilterContainer keeps messages belonging to the given container
func FilterContainer(msgs []domain.ContentMessage, containerID string) []domain.ContentMessage {
	res := make([]domain.ContentMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.ContainerID == containerID {
			res = append(res, m)
		}
	}
	return res
}

// plainText strips markup and collapses whitespace
func plainText(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		s = html.UnescapeString(stripPolicy.Sanitize(s))
	}
	return strings.Join(strings.Fields(s), " ")
}
