package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/umputun/watchmon/pkg/domain"
)

func msgs(ids ...string) []domain.ContentMessage {
	res := make([]domain.ContentMessage, 0, len(ids))
	for _, id := range ids {
		res = append(res, domain.ContentMessage{ID: id, Text: "text " + id})
	}
	return res
}

func ids(list []domain.ContentMessage) []string {
	res := make([]string, 0, len(list))
	for _, m := range list {
		res = append(res, m.ID)
	}
	return res
}

func TestNewMessages(t *testing.T) {
	tests := []struct {
		name     string
		fetched  []domain.ContentMessage
		analyzed map[string]struct{}
		want     []string
	}{
		{"nothing analyzed", msgs("a", "b"), nil, []string{"a", "b"}},
		{"all analyzed", msgs("a", "b"), map[string]struct{}{"a": {}, "b": {}}, []string{}},
		{"partial keeps order", msgs("c", "a", "d", "b"), map[string]struct{}{"a": {}}, []string{"c", "d", "b"}},
		{"duplicates in fetched", msgs("a", "b", "a"), nil, []string{"a", "b"}},
		{"empty fetched", nil, map[string]struct{}{"a": {}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(NewMessages(tt.fetched, tt.analyzed)))
		})
	}
}

func TestNewMessages_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idGen := rapid.StringMatching(`[a-f0-9]{1,3}`)
		fetchedIDs := rapid.SliceOfDistinct(idGen, rapid.ID[string]).Draw(t, "fetched")
		analyzedIDs := rapid.SliceOf(idGen).Draw(t, "analyzed")

		analyzed := make(map[string]struct{}, len(analyzedIDs))
		for _, id := range analyzedIDs {
			analyzed[id] = struct{}{}
		}

		got := NewMessages(msgs(fetchedIDs...), analyzed)

		// new = F \ A and |new| = |F| - |F ∩ A|
		overlap := 0
		for _, id := range fetchedIDs {
			if _, ok := analyzed[id]; ok {
				overlap++
			}
		}
		if len(got) != len(fetchedIDs)-overlap {
			t.Fatalf("got %d new messages, want %d", len(got), len(fetchedIDs)-overlap)
		}
		for _, m := range got {
			if _, ok := analyzed[m.ID]; ok {
				t.Fatalf("analyzed id %q returned as new", m.ID)
			}
		}

		// order preserved
		pos := make(map[string]int, len(fetchedIDs))
		for i, id := range fetchedIDs {
			pos[id] = i
		}
		for i := 1; i < len(got); i++ {
			if pos[got[i-1].ID] > pos[got[i].ID] {
				t.Fatalf("order not preserved: %v", ids(got))
			}
		}

		// once the result is analyzed nothing is new anymore
		for _, m := range got {
			analyzed[m.ID] = struct{}{}
		}
		if again := NewMessages(msgs(fetchedIDs...), analyzed); len(again) != 0 {
			t.Fatalf("second diff returned %v", ids(again))
		}
	})
}
