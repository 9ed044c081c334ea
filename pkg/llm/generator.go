package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/watchmon/pkg/domain"
	"github.com/umputun/watchmon/pkg/metrics"
)

// Generator asks the model whether a batch of new messages contains an action for the item's goal
type Generator struct {
	completer       Completer
	maxMessages     int
	maxMessageChars int
}

// GeneratorParams configures a Generator, zero values use defaults
type GeneratorParams struct {
	MaxMessages     int // messages sent per call, default 15
	MaxMessageChars int // runes kept per message, default 500
}

// NewGenerator makes a generator on top of a completer
func NewGenerator(completer Completer, params GeneratorParams) *Generator {
	if params.MaxMessages <= 0 {
		params.MaxMessages = 15
	}
	if params.MaxMessageChars <= 0 {
		params.MaxMessageChars = 500
	}
	return &Generator{completer: completer, maxMessages: params.MaxMessages, maxMessageChars: params.MaxMessageChars}
}

// Generate makes exactly one completion call for the batch and returns a draft
// on a positive verdict. Call errors and unusable responses return nil.
func (g *Generator) Generate(ctx context.Context, item domain.WatchedItem, msgs []domain.ContentMessage) *domain.ActionDraft {
	if len(msgs) == 0 {
		return nil
	}

	batch := msgs
	if len(batch) > g.maxMessages {
		batch = batch[:g.maxMessages]
	}
	transcript := g.transcript(batch)

	resp, err := g.completer.Complete(ctx, g.prompt(item, transcript))
	if err != nil {
		lgr.Printf("[WARN] classifier call failed for %s: %v", item.DisplayName(), err)
		metrics.ClassifyFailures.Inc()
		return nil
	}

	draft, err := ParseVerdict(resp)
	if err != nil {
		if errors.Is(err, ErrNoAction) {
			lgr.Printf("[DEBUG] no action for %s in %d messages", item.DisplayName(), len(batch))
			return nil
		}
		lgr.Printf("[WARN] unusable classifier response for %s: %v", item.DisplayName(), err)
		metrics.ClassifyFailures.Inc()
		return nil
	}

	draft.SourceContent = transcript
	draft.SourceMessageIDs = make([]string, 0, len(batch))
	for _, m := range batch {
		draft.SourceMessageIDs = append(draft.SourceMessageIDs, m.ID)
	}
	return draft
}

// transcript renders messages as "[timestamp] author: text" lines
func (g *Generator) transcript(msgs []domain.ContentMessage) string {
	var sb strings.Builder
	for _, m := range msgs {
		author := m.Author
		if author == "" {
			author = "unknown"
		}
		text := strings.Join(strings.Fields(m.Text), " ")
		sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", m.Timestamp, author, truncate(text, g.maxMessageChars)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (g *Generator) prompt(item domain.WatchedItem, transcript string) string {
	var sb strings.Builder
	sb.WriteString("Goal: ")
	sb.WriteString(item.Goal)
	sb.WriteString("\n\n")

	sb.WriteString("Watched item:\n")
	sb.WriteString(fmt.Sprintf("- name: %s\n", item.DisplayName()))
	sb.WriteString(fmt.Sprintf("- platform: %s\n", item.Platform))
	sb.WriteString(fmt.Sprintf("- type: %s\n", item.Type))
	sb.WriteString(fmt.Sprintf("- source id: %s\n\n", item.SourceID))

	sb.WriteString("New messages:\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\n")

	sb.WriteString(`Respond with one JSON object: {"has_action": true|false, "title": "...", "description": "...", "priority": "low|medium|high|critical"}.`)
	sb.WriteString("\nSet has_action to false when nothing matches the goal.")
	return sb.String()
}

// truncate cuts s to max runes, appending "..." when shortened
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	r := []rune(s)
	return string(r[:maxRunes]) + "..."
}
