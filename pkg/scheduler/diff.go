package scheduler

import "github.com/umputun/watchmon/pkg/domain"

// NewMessages returns fetched messages whose ids are not in analyzed, keeping
// fetched order. Repeated ids within fetched collapse to the first occurrence.
func NewMessages(fetched []domain.ContentMessage, analyzed map[string]struct{}) []domain.ContentMessage {
	res := make([]domain.ContentMessage, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))
	for _, m := range fetched {
		if _, ok := analyzed[m.ID]; ok {
			continue
		}
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		res = append(res, m)
	}
	return res
}
