package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a watched item with the same platform, type and source id exists
var ErrDuplicate = errors.New("duplicate")

// ErrInvalid is returned when input fails validation before reaching storage
var ErrInvalid = errors.New("invalid input")

// Platform identifies a content source kind
type Platform string

// supported platforms
const (
	PlatformTelegram Platform = "telegram"
	PlatformDiscord  Platform = "discord"
	PlatformWhatsApp Platform = "whatsapp"
	PlatformSlack    Platform = "slack"
	PlatformEmail    Platform = "email"
	PlatformGitHub   Platform = "github"
	PlatformRSS      Platform = "rss"
)

// Valid reports whether the platform is one of the known ones
func (p Platform) Valid() bool {
	switch p {
	case PlatformTelegram, PlatformDiscord, PlatformWhatsApp, PlatformSlack, PlatformEmail, PlatformGitHub, PlatformRSS:
		return true
	}
	return false
}

// ItemType identifies the shape of a watched target within its platform
type ItemType string

// supported item types
const (
	ItemChat    ItemType = "chat"
	ItemChannel ItemType = "channel"
	ItemServer  ItemType = "server"
	ItemMailbox ItemType = "mailbox"
	ItemRepo    ItemType = "repo"
	ItemFeed    ItemType = "feed"
)

// Valid reports whether the item type is one of the known ones
func (t ItemType) Valid() bool {
	switch t {
	case ItemChat, ItemChannel, ItemServer, ItemMailbox, ItemRepo, ItemFeed:
		return true
	}
	return false
}

// WatchStatus is the monitoring state of a watched item
type WatchStatus string

// watched item statuses
const (
	WatchActive WatchStatus = "active"
	WatchPaused WatchStatus = "paused"
)

// WatchedItem is a user-designated monitoring target paired with a goal.
// The (Platform, Type, SourceID) triple is unique.
type WatchedItem struct {
	ID        int64
	Platform  Platform
	Type      ItemType
	SourceID  string
	Name      string
	Metadata  map[string]string
	Goal      string
	Status    WatchStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meta returns metadata value for the key or an empty string
func (w WatchedItem) Meta(key string) string {
	if w.Metadata == nil {
		return ""
	}
	return w.Metadata[key]
}

// DisplayName returns the name if set, otherwise the source id
func (w WatchedItem) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.SourceID
}
