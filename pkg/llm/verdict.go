package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/umputun/watchmon/pkg/domain"
)

// errors returned by ParseVerdict, all of them mean "no action"
var (
	ErrNoJSON   = errors.New("no json object in response")
	ErrNoAction = errors.New("no action in verdict")
)

// Verdict is the structured answer expected from the model
type Verdict struct {
	HasAction   bool   `json:"has_action"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ExtractJSONObject returns the first balanced {...} substring of s.
// Braces inside JSON string literals, including escaped quotes, are ignored.
// An opening brace that never closes is skipped and the scan resumes after it.
func ExtractJSONObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end, ok := matchBrace(s, start); ok {
			return s[start : end+1], true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchBrace finds the index of the brace closing the one at start
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// ParseVerdict extracts a verdict from raw model output and converts a positive
// one into a draft. Unknown priorities become medium.
func ParseVerdict(raw string) (*domain.ActionDraft, error) {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, ErrNoJSON
	}

	var v Verdict
	if err := json.Unmarshal([]byte(obj), &v); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}
	if !v.HasAction {
		return nil, ErrNoAction
	}

	title := strings.TrimSpace(v.Title)
	if title == "" {
		return nil, fmt.Errorf("empty title: %w", ErrNoAction)
	}

	return &domain.ActionDraft{
		Title:       title,
		Description: strings.TrimSpace(v.Description),
		Priority:    domain.ParsePriority(v.Priority),
	}, nil
}
