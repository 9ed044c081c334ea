package domain

import "time"

// ContentMessage is a normalized message fetched from a content source.
// It is never persisted as such and is re-fetched on every sweep.
type ContentMessage struct {
	ID          string // unique within its platform
	Text        string
	Author      string
	Timestamp   string // RFC 3339
	ContainerID string // sub-source the message belongs to, e.g. a channel within a server
}

// AnalyzedMessage records that a message was evaluated for a watched item
type AnalyzedMessage struct {
	WatchedItemID int64
	MessageID     string
	Platform      Platform
	AnalyzedAt    time.Time
}
