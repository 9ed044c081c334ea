package domain

import (
	"strings"
	"time"
)

// Priority of a generated action, totally ordered by Rank
type Priority string

// action priorities, lowest first
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank returns the position of the priority in low < medium < high < critical.
// Unknown values rank as zero, below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	}
	return 0
}

// Less reports whether p sorts before other
func (p Priority) Less(other Priority) bool {
	return p.Rank() < other.Rank()
}

// Valid reports whether the priority is one of the known ones
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority converts free text into a priority, defaulting to medium
func ParsePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p
	}
	return PriorityMedium
}

// ActionStatus is the lifecycle state of a generated action
type ActionStatus string

// action statuses
const (
	ActionPending   ActionStatus = "pending"
	ActionCompleted ActionStatus = "completed"
	ActionDismissed ActionStatus = "dismissed"
)

// Valid reports whether the status is one of the known ones
func (s ActionStatus) Valid() bool {
	switch s {
	case ActionPending, ActionCompleted, ActionDismissed:
		return true
	}
	return false
}

// Action is a user-facing task derived from matched content
type Action struct {
	ID               int64
	WatchedItemID    int64
	Title            string
	Description      string
	Priority         Priority
	Status           ActionStatus
	SourceContent    string
	SourceMessageIDs []string
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

// ActionDraft is a positive classifier verdict, not yet persisted.
// SourceContent and SourceMessageIDs describe the batch the verdict was made on.
type ActionDraft struct {
	Title            string
	Description      string
	Priority         Priority
	SourceContent    string
	SourceMessageIDs []string
}

// ActionFilter narrows action listing. Zero values mean "any".
type ActionFilter struct {
	Status        ActionStatus
	WatchedItemID int64
	MinPriority   Priority
	Limit         int
}
